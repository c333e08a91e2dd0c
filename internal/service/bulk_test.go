package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/domain"
	apperrors "github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/errors"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/httpclient"
)

func TestDecode_JSON(t *testing.T) {
	rows, err := Decode([]byte(`{"businesses":[{"name":"ACME","contactEmail":"a@acme.io","yearFounded":1999}]}`), FormatJSON)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ACME", rows[0].Name)
	assert.Equal(t, "a@acme.io", rows[0].ContactEmail)
	assert.Equal(t, 1999, rows[0].YearFounded)
}

func TestDecode_YAML(t *testing.T) {
	doc := `
businesses:
  - name: ACME
    location: Metropolis
    employeeCount: 12
  - name: Bolt Works
    manager: user-7
`
	rows, err := Decode([]byte(doc), FormatYAML)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Metropolis", rows[0].Location)
	assert.Equal(t, 12, rows[0].EmployeeCount)
	assert.Equal(t, "user-7", rows[1].Manager)
}

func TestDecode_BareJSONArrayWithDefaults(t *testing.T) {
	data := `[
		{"name":"ACME","yearFounded":"1999","employeeCount":"about 40"},
		{"name":"Bolt Works","industry":"retail","typeOfEntity":"Corporation","employeeCount":12}
	]`
	rows, err := Decode([]byte(data), FormatJSON)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, DefaultIndustry, rows[0].Industry)
	assert.Equal(t, DefaultTypeOfEntity, rows[0].TypeOfEntity)
	assert.Equal(t, 1999, rows[0].YearFounded)
	assert.Zero(t, rows[0].EmployeeCount)
	assert.Equal(t, "retail", rows[1].Industry)
	assert.Equal(t, "Corporation", rows[1].TypeOfEntity)
	assert.Equal(t, 12, rows[1].EmployeeCount)
}

func TestDecode_BareYAMLList(t *testing.T) {
	doc := `
- name: ACME
  yearFounded: "2001"
- name: Bolt Works
  typeOfEntity: Partnership
`
	rows, err := Decode([]byte(doc), FormatYAML)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2001, rows[0].YearFounded)
	assert.Equal(t, DefaultIndustry, rows[0].Industry)
	assert.Equal(t, "Partnership", rows[1].TypeOfEntity)
}

func TestDecode_CSV(t *testing.T) {
	data := "\ufeffname,location,industry,yearFounded,employeeCount,contactEmail\n" +
		"ACME,\"Austin, TX\",,1999,n/a,info@acme.test\n" +
		",,,,,\n" +
		"Bolt Works,Denver,retail,,7,\n"
	rows, err := Decode([]byte(data), FormatCSV)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.BusinessImport{
		Name:         "ACME",
		Location:     "Austin, TX",
		Industry:     DefaultIndustry,
		TypeOfEntity: DefaultTypeOfEntity,
		YearFounded:  1999,
		ContactEmail: "info@acme.test",
	}, rows[0])
	assert.Equal(t, "retail", rows[1].Industry)
	assert.Equal(t, 7, rows[1].EmployeeCount)
}

func TestDecode_CSVTemplateHeaderIsAccepted(t *testing.T) {
	header := strings.Join(ImportColumns(), ",")
	row := strings.Repeat(",", len(ImportColumns())-1)
	rows, err := Decode([]byte(header+"\n"+"ACME"+row+"\n"), FormatCSV)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ACME", rows[0].ID)
	assert.Len(t, ImportColumns(), len(importFields))
}

func TestLooseInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1999", 1999},
		{" 42 ", 42},
		{"12.5", 12},
		{"40 staff", 40},
		{"-3", -3},
		{"+", 0},
		{"n/a", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, looseInt(tt.in))
		})
	}
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format ImportFormat
	}{
		{"malformed json", `{"businesses":[`, FormatJSON},
		{"unknown json field", `{"businesses":[{"name":"x","color":"red"}]}`, FormatJSON},
		{"empty", `{"businesses":[]}`, FormatJSON},
		{"malformed yaml", "businesses: [\n  - name: x\n", FormatYAML},
		{"unsupported format", `<businesses/>`, ImportFormat("xml")},
		{"json scalar", `"acme"`, FormatJSON},
		{"json wrapper with extra key", `{"businesses":[{"name":"x"}],"owner":"me"}`, FormatJSON},
		{"json nested value", `[{"name":"x","manager":{"id":"u1"}}]`, FormatJSON},
		{"csv unknown column", "name,color\nACME,red\n", FormatCSV},
		{"csv ragged row", "name,location\nACME\n", FormatCSV},
		{"csv header only", "name,location\n", FormatCSV},
		{"csv empty", "", FormatCSV},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}

func TestImport_MixedRows(t *testing.T) {
	repo := new(mockBusinessRepository)
	cache := new(mockListingCache)
	events := new(mockEventPublisher)
	svc := NewBulkImportService(repo, cache, events, newTestLogger())

	rows := []domain.BusinessImport{
		{Name: "ACME"},
		{Name: "", ContactEmail: "not-an-email"},
		{Name: "Rejected Co"},
	}
	repo.On("Create", mock.Anything, rows[0]).Return("b1", nil)
	repo.On("Create", mock.Anything, rows[2]).
		Return("", apperrors.Upstream("content API rejected the request", errors.New("bad data")))
	events.On("PublishBusinessImported", mock.Anything, "b1", "ACME", "admin-1").Return(nil)
	cache.On("Invalidate", mock.Anything).Return(nil)

	result, err := svc.Import(context.Background(), rows, "admin-1")

	require.NoError(t, err)
	require.Len(t, result.Created, 1)
	assert.Equal(t, ImportedBusiness{Row: 1, ID: "b1", Name: "ACME"}, result.Created[0])
	require.Len(t, result.Failed, 2)
	assert.Equal(t, 2, result.Failed[0].Row)
	assert.Contains(t, result.Failed[0].Fields, "name")
	assert.Contains(t, result.Failed[0].Fields, "contactEmail")
	assert.Equal(t, 3, result.Failed[1].Row)
	assert.Equal(t, "content API rejected the request", result.Failed[1].Error)
	cache.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestImport_StopsWhenUpstreamUnavailable(t *testing.T) {
	repo := new(mockBusinessRepository)
	svc := NewBulkImportService(repo, nil, nil, newTestLogger())

	rows := []domain.BusinessImport{{Name: "A"}, {Name: "B"}, {Name: "C"}}
	repo.On("Create", mock.Anything, rows[0]).Return("b1", nil)
	repo.On("Create", mock.Anything, rows[1]).
		Return("", apperrors.Unavailable("content API is temporarily unavailable", httpclient.ErrCircuitOpen))

	result, err := svc.Import(context.Background(), rows, "admin-1")

	require.Error(t, err)
	assert.Equal(t, 503, apperrors.HTTPStatus(err))
	assert.Len(t, result.Created, 1)
	repo.AssertNotCalled(t, "Create", mock.Anything, rows[2])
}

func TestImport_NoCreatedRowsKeepsCache(t *testing.T) {
	repo := new(mockBusinessRepository)
	cache := new(mockListingCache)
	svc := NewBulkImportService(repo, cache, nil, newTestLogger())

	result, err := svc.Import(context.Background(), []domain.BusinessImport{{Name: ""}}, "admin-1")

	require.NoError(t, err)
	assert.Empty(t, result.Created)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything)
}
