// Command dirsearch is an interactive terminal search over the business
// directory. Each input line is a query; ":n" and ":p" page through the
// results, ":c" clears the query and ":q" quits.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/aggregate"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/config"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/domain"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/graphql"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/repository/upstream"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/search"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/service"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/httpclient"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/logger"
)

func main() {
	delay := flag.Duration("delay", search.DefaultDebounceDelay, "debounce delay between typing and searching")
	pageSize := flag.Int("page-size", service.ListingPageSize, "results per page")
	maxPages := flag.Int("max-pages", 0, "cap on the number of result pages, 0 for none")
	flag.Parse()

	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "dirsearch: %v\n", err)
		os.Exit(1)
	}
	log := logger.NewText(cfg.LogLevel, os.Stderr)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log, search.SessionConfig{Delay: *delay, PageSize: *pageSize, MaxPages: *maxPages}, os.Stdin, os.Stdout); err != nil {
		log.Error("dirsearch failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger, sessionCfg search.SessionConfig, in io.Reader, out io.Writer) error {
	headers := map[string]string{}
	if cfg.UpstreamToken != "" {
		headers["Authorization"] = "Bearer " + cfg.UpstreamToken
	}
	hc := httpclient.New(httpclient.Config{
		Timeout:         cfg.UpstreamTimeout,
		MaxRetries:      cfg.UpstreamMaxRetries,
		MaxConnsPerHost: 4,
		Headers:         headers,
	})
	gql := graphql.NewClient(cfg.UpstreamURL, hc, log, graphql.Options{SlowThreshold: cfg.UpstreamSlowThreshold})
	directory := service.NewDirectoryService(
		upstream.NewBusinessRepository(gql),
		upstream.NewProductRepository(gql),
		upstream.NewJobRepository(gql),
		nil,
		cfg.PublicBaseURL,
		log,
	)

	businesses, err := directory.AllBusinesses(ctx)
	if err != nil {
		return fmt.Errorf("load businesses: %w", err)
	}
	log.Info("directory loaded", slog.Int("businesses", len(businesses)))

	t := &terminal{out: out}
	session := search.NewSession(businesses, sessionCfg, func(query string, _ []domain.Business) {
		t.printf("results for %q\n", query)
		t.render()
	})
	defer session.Close()
	t.session = session

	fmt.Fprintln(out, "type a query; :n next page, :p previous page, :c clear, :q quit")
	return t.loop(ctx, in)
}

// terminal renders a search session to a line-oriented writer.
type terminal struct {
	mu      sync.Mutex
	out     io.Writer
	session *search.Session[domain.Business]
}

func (t *terminal) loop(ctx context.Context, in io.Reader) error {
	done := make(chan struct{})
	defer close(done)

	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		errc <- scanLines(in, lines, done)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errc:
			return err
		case line := <-lines:
			if !t.handle(line) {
				return nil
			}
		}
	}
}

// scanLines sends each line of in until input ends or done is closed.
func scanLines(in io.Reader, lines chan<- string, done <-chan struct{}) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-done:
			return nil
		}
	}
	return scanner.Err()
}

// handle applies one input line. It returns false when the user quits.
func (t *terminal) handle(line string) bool {
	switch cmd := strings.TrimSpace(line); {
	case cmd == ":q":
		return false
	case cmd == ":c":
		t.session.Clear()
	case cmd == ":n":
		t.session.GoTo(t.session.Page().PageNumber + 1)
		t.render()
	case cmd == ":p":
		t.session.GoTo(t.session.Page().PageNumber - 1)
		t.render()
	case strings.HasPrefix(cmd, ":"):
		if n, err := strconv.Atoi(cmd[1:]); err == nil {
			t.session.GoTo(n)
			t.render()
			return true
		}
		t.printf("unknown command %s\n", cmd)
	case cmd == "":
		t.render()
	default:
		t.session.Type(line)
	}
	return true
}

func (t *terminal) render() {
	view := t.session.View()
	if !view.Active {
		t.printf("no active search\n")
		return
	}

	page := view.Page
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(page.Items) == 0 {
		fmt.Fprintln(t.out, "  no businesses match")
	}
	for _, b := range page.Items {
		rating := aggregate.Summarize(b.Reviews)
		fmt.Fprintf(t.out, "  %-40s %-24s %.1f (%d reviews)\n", b.Name, b.Location, rating.Average, rating.Count)
	}
	fmt.Fprintf(t.out, "page %d of %d\n", page.PageNumber, page.TotalPages)
}

func (t *terminal) printf(format string, args ...any) {
	t.mu.Lock()
	fmt.Fprintf(t.out, format, args...)
	t.mu.Unlock()
}
