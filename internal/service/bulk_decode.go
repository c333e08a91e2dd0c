package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/domain"
	apperrors "github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/errors"
)

// Defaults applied to uploaded rows that leave the field empty.
const (
	DefaultIndustry     = "other"
	DefaultTypeOfEntity = "LLC"
)

// uploadKey is the wrapper key of an object-shaped JSON or YAML upload.
const uploadKey = "businesses"

// importFields maps upload column names to BusinessImport fields. The
// names are the content API's, which is also the CSV template header.
var importFields = map[string]func(*domain.BusinessImport, string){
	"id":               func(b *domain.BusinessImport, v string) { b.ID = v },
	"name":             func(b *domain.BusinessImport, v string) { b.Name = v },
	"description":      func(b *domain.BusinessImport, v string) { b.Description = v },
	"industry":         func(b *domain.BusinessImport, v string) { b.Industry = v },
	"contactEmail":     func(b *domain.BusinessImport, v string) { b.ContactEmail = v },
	"contactPhone":     func(b *domain.BusinessImport, v string) { b.ContactPhone = v },
	"website":          func(b *domain.BusinessImport, v string) { b.Website = v },
	"location":         func(b *domain.BusinessImport, v string) { b.Location = v },
	"address":          func(b *domain.BusinessImport, v string) { b.Address = v },
	"yearFounded":      func(b *domain.BusinessImport, v string) { b.YearFounded = looseInt(v) },
	"typeOfEntity":     func(b *domain.BusinessImport, v string) { b.TypeOfEntity = v },
	"businessHours":    func(b *domain.BusinessImport, v string) { b.BusinessHours = v },
	"revenue":          func(b *domain.BusinessImport, v string) { b.Revenue = v },
	"employeeCount":    func(b *domain.BusinessImport, v string) { b.EmployeeCount = looseInt(v) },
	"keywords":         func(b *domain.BusinessImport, v string) { b.Keywords = v },
	"companyLinkedIn":  func(b *domain.BusinessImport, v string) { b.CompanyLinkedIn = v },
	"companyFacebook":  func(b *domain.BusinessImport, v string) { b.CompanyFacebook = v },
	"companyTwitter":   func(b *domain.BusinessImport, v string) { b.CompanyTwitter = v },
	"technologiesUsed": func(b *domain.BusinessImport, v string) { b.TechnologiesUsed = v },
	"sicCodes":         func(b *domain.BusinessImport, v string) { b.SICCodes = v },
	"manager":          func(b *domain.BusinessImport, v string) { b.Manager = v },
}

// templateColumns is the header row of the CSV template.
var templateColumns = []string{
	"id", "name", "description", "industry", "contactEmail", "contactPhone",
	"website", "location", "address", "yearFounded", "typeOfEntity",
	"businessHours", "revenue", "employeeCount", "keywords", "companyLinkedIn",
	"companyFacebook", "companyTwitter", "technologiesUsed", "sicCodes", "manager",
}

// ImportColumns returns the accepted column names in template order.
func ImportColumns() []string {
	return slices.Clone(templateColumns)
}

// Decode parses an upload in the given format. JSON and YAML uploads are
// either a bare list of businesses or an object with a "businesses" list;
// CSV uploads start with a header row. Empty industry and type of entity
// get their defaults, and numeric fields that do not parse become 0.
func Decode(data []byte, format ImportFormat) ([]domain.BusinessImport, error) {
	var (
		records []map[string]string
		err     error
	)
	switch format {
	case FormatJSON:
		records, err = jsonRecords(data)
	case FormatYAML:
		records, err = yamlRecords(data)
	case FormatCSV:
		records, err = csvRecords(data)
	default:
		return nil, apperrors.InvalidInput(fmt.Sprintf("unsupported upload format %q", format))
	}
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid %s upload: %v", strings.ToUpper(string(format)), err))
	}

	if len(records) == 0 {
		return nil, apperrors.InvalidInput("upload contains no businesses")
	}
	if len(records) > MaxImportRows {
		return nil, apperrors.InvalidInput(fmt.Sprintf("upload contains %d businesses, at most %d are allowed", len(records), MaxImportRows))
	}

	rows := make([]domain.BusinessImport, 0, len(records))
	for i, rec := range records {
		row, err := toImport(rec)
		if err != nil {
			return nil, apperrors.InvalidInput(fmt.Sprintf("row %d: %v", i+1, err))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func toImport(rec map[string]string) (domain.BusinessImport, error) {
	var row domain.BusinessImport
	for key, value := range rec {
		set, ok := importFields[key]
		if !ok {
			return row, fmt.Errorf("unknown field %q", key)
		}
		set(&row, strings.TrimSpace(value))
	}
	if row.Industry == "" {
		row.Industry = DefaultIndustry
	}
	if row.TypeOfEntity == "" {
		row.TypeOfEntity = DefaultTypeOfEntity
	}
	return row, nil
}

// looseInt reads the leading integer of v, 0 when there is none.
func looseInt(v string) int {
	v = strings.TrimSpace(v)
	end := 0
	for end < len(v) && (v[end] >= '0' && v[end] <= '9' || end == 0 && (v[0] == '-' || v[0] == '+')) {
		end++
	}
	n, err := strconv.Atoi(v[:end])
	if err != nil {
		return 0
	}
	return n
}

func jsonRecords(data []byte) ([]map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after the upload")
	}
	return listRecords(doc)
}

func yamlRecords(data []byte) ([]map[string]string, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return listRecords(doc)
}

// listRecords accepts a bare list or an object holding only the list.
func listRecords(doc any) ([]map[string]string, error) {
	if obj, ok := doc.(map[string]any); ok {
		for key := range obj {
			if key != uploadKey {
				return nil, fmt.Errorf("unknown field %q", key)
			}
		}
		doc = obj[uploadKey]
	}
	if doc == nil {
		return nil, nil
	}
	list, ok := doc.([]any)
	if !ok {
		return nil, errors.New("expected a list of businesses")
	}

	records := make([]map[string]string, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("row %d is not an object", i+1)
		}
		rec := make(map[string]string, len(obj))
		for key, value := range obj {
			s, err := scalar(value)
			if err != nil {
				return nil, fmt.Errorf("row %d field %q: %w", i+1, key, err)
			}
			rec[key] = s
		}
		records = append(records, rec)
	}
	return records, nil
}

func scalar(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int, int64, uint64, float64:
		return fmt.Sprint(v), nil
	default:
		return "", errors.New("must be a string or a number")
	}
}

func csvRecords(data []byte) ([]map[string]string, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\ufeff"))))
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []map[string]string
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		rec := make(map[string]string, len(header))
		blank := true
		for i, name := range header {
			if name == "" {
				continue
			}
			rec[name] = fields[i]
			if strings.TrimSpace(fields[i]) != "" {
				blank = false
			}
		}
		if !blank {
			records = append(records, rec)
		}
	}
}
