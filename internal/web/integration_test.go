package web_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obeidat/fahs/internal/ai"
	"github.com/obeidat/fahs/internal/db"
	"github.com/obeidat/fahs/internal/domain"
	"github.com/obeidat/fahs/internal/report"
	"github.com/obeidat/fahs/internal/service"
	"github.com/obeidat/fahs/internal/store"
	"github.com/obeidat/fahs/internal/taxonomy"
	"github.com/obeidat/fahs/internal/web"
)

// minimalJPEG is 512 bytes with the JPEG magic bytes header followed by zeros.
// http.DetectContentType identifies JPEG from the leading 0xFF 0xD8 bytes.
var minimalJPEG = func() []byte {
	b := make([]byte, 512)
	b[0] = 0xFF
	b[1] = 0xD8
	b[2] = 0xFF
	b[3] = 0xE0
	return b
}()

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// stubAssistant returns canned responses, or an error when set.
type stubAssistant struct {
	summary     string
	description string
	err         error
}

func (s *stubAssistant) SummarizeFindings(context.Context, []ai.FailedFinding) (string, error) {
	return s.summary, s.err
}

func (s *stubAssistant) DescribeDefect(context.Context, []byte, string, string) (string, error) {
	return s.description, s.err
}

func newTestServer(t *testing.T, assistant ai.Assistant) *httptest.Server {
	t.Helper()
	ts, _ := newTestServerWithDB(t, assistant)
	return ts
}

func newTestServerWithDB(t *testing.T, assistant ai.Assistant) (*httptest.Server, *sql.DB) {
	t.Helper()
	database, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	inspStore := store.NewInspectionStore(database)
	clientStore := store.NewClientStore(database)
	invoiceStore := store.NewInvoiceStore(database)

	tax, err := taxonomy.Load()
	require.NoError(t, err)

	srv := web.NewServer(web.Services{
		Inspections: service.NewInspectionService(inspStore, assistant, logger),
		Clients:     service.NewClientService(clientStore, logger),
		Invoices:    service.NewInvoiceService(invoiceStore, clientStore, logger),
		Dashboard:   service.NewDashboardService(inspStore, clientStore, invoiceStore, logger),
		Renderer:    report.New(logger, report.Options{CompanyName: "Fahs", WatermarkText: "FAHS"}),
		Assistant:   assistant,
		Taxonomy:    tax,
	}, logger)

	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts, database
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestInspectionLifecycle(t *testing.T) {
	ts := newTestServer(t, &stubAssistant{summary: "Two defects noted."})

	insp := domain.Inspection{
		ClientName:       "Ahmed Al-Mansouri",
		PropertyLocation: "Villa 12",
		PropertyType:     domain.PropertyVilla,
		InspectorName:    "Omar Khalil",
		Areas: []domain.Area{
			{Name: "Kitchen", Items: []domain.Item{
				{Category: "Plumbing", Point: "Sink drainage", Status: domain.StatusFail, Comments: "Slow drain"},
			}},
		},
	}
	resp := postJSON(t, ts.URL+"/api/inspections", insp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	saved := decodeBody[domain.Inspection](t, resp)
	require.NotEmpty(t, saved.ID)
	assert.NotEmpty(t, saved.Areas[0].ID)
	assert.NotEmpty(t, saved.InspectionDate)

	resp, err := http.Get(ts.URL + "/api/inspections/" + saved.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeBody[domain.Inspection](t, resp)
	assert.Equal(t, "Ahmed Al-Mansouri", got.ClientName)

	resp, err = http.Get(ts.URL + "/api/inspections?type=Villa")
	require.NoError(t, err)
	list := decodeBody[[]domain.Inspection](t, resp)
	require.Len(t, list, 1)

	resp, err = http.Get(ts.URL + "/api/inspections?type=Building")
	require.NoError(t, err)
	assert.Empty(t, decodeBody[[]domain.Inspection](t, resp))

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/inspections/"+saved.ID, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/inspections/" + saved.ID)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSaveInspectionValidation(t *testing.T) {
	ts := newTestServer(t, &stubAssistant{})

	resp := postJSON(t, ts.URL+"/api/inspections", domain.Inspection{ClientName: "only a client"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "propertyLocation")
}

func TestGenerateSummaryEndpoint(t *testing.T) {
	ts := newTestServer(t, &stubAssistant{summary: "The sink drains slowly."})

	insp := domain.Inspection{
		ClientName:       "Client",
		PropertyLocation: "Apartment 3A",
		InspectorName:    "Omar",
		Areas: []domain.Area{{Name: "Kitchen", Items: []domain.Item{
			{Point: "Sink drainage", Status: domain.StatusFail},
		}}},
	}
	saved := decodeBody[domain.Inspection](t, postJSON(t, ts.URL+"/api/inspections", insp))

	resp := postJSON(t, ts.URL+"/api/inspections/"+saved.ID+"/summary", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeBody[domain.Inspection](t, resp)
	assert.Equal(t, "The sink drains slowly.", got.AISummary)
}

func TestGenerateSummaryDegradesOnAIFailure(t *testing.T) {
	ts := newTestServer(t, &stubAssistant{err: fmt.Errorf("backend down")})

	insp := domain.Inspection{
		ClientName:       "Client",
		PropertyLocation: "Apartment 3A",
		InspectorName:    "Omar",
		Areas: []domain.Area{{Name: "Kitchen", Items: []domain.Item{
			{Point: "Sink drainage", Status: domain.StatusFail},
		}}},
	}
	saved := decodeBody[domain.Inspection](t, postJSON(t, ts.URL+"/api/inspections", insp))

	resp := postJSON(t, ts.URL+"/api/inspections/"+saved.ID+"/summary", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "AI service unavailable. Please try again.")
}

func TestInspectionReportDownload(t *testing.T) {
	ts := newTestServer(t, &stubAssistant{})

	insp := domain.Inspection{
		ClientName:       "Client",
		PropertyLocation: "Villa 12",
		InspectorName:    "Omar",
	}
	saved := decodeBody[domain.Inspection](t, postJSON(t, ts.URL+"/api/inspections", insp))

	resp, err := http.Get(ts.URL + "/api/inspections/" + saved.ID + "/report")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestInvoiceLifecycleAndDocument(t *testing.T) {
	ts := newTestServer(t, &stubAssistant{})

	client := domain.Client{
		Name: "Ahmed Al-Mansouri",
		Properties: []domain.Property{
			{Location: "Villa 12", Type: domain.UseResidential, Size: dec("800")},
		},
	}
	savedClient := decodeBody[domain.Client](t, postJSON(t, ts.URL+"/api/clients", client))
	require.NotEmpty(t, savedClient.Properties[0].ID)

	resp := postJSON(t, ts.URL+"/api/invoices/for-property", map[string]string{
		"clientId":   savedClient.ID,
		"propertyId": savedClient.Properties[0].ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	draft := decodeBody[domain.Invoice](t, resp)
	assert.Equal(t, "Ahmed Al-Mansouri", draft.ClientName)
	require.Len(t, draft.Services, 1)

	saved := decodeBody[domain.Invoice](t, postJSON(t, ts.URL+"/api/invoices", draft))
	assert.True(t, saved.Subtotal.Equal(dec("800")))
	assert.True(t, saved.Tax.Equal(dec("40")))
	assert.True(t, saved.TotalAmount.Equal(dec("840")))

	resp, err := http.Get(ts.URL + "/api/invoices/" + saved.ID + "/document")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

func TestDescribeDefectEndpoint(t *testing.T) {
	ts := newTestServer(t, &stubAssistant{description: "Hairline crack across the tile."})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "defect.jpg")
	require.NoError(t, err)
	_, err = fw.Write(minimalJPEG)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("point", "Floor tiles"))
	require.NoError(t, mw.Close())

	resp, err := http.Post(ts.URL+"/api/ai/describe", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeBody[map[string]string](t, resp)
	assert.Equal(t, "Hairline crack across the tile.", got["description"])
}

func TestDescribeDefectRejectsNonImage(t *testing.T) {
	ts := newTestServer(t, &stubAssistant{description: "unused"})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "notes.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("plain text, not an image"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(ts.URL+"/api/ai/describe", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCorruptRecordsSurfacedInHeader(t *testing.T) {
	ts, database := newTestServerWithDB(t, &stubAssistant{})

	good := domain.Inspection{ClientName: "C", PropertyLocation: "L", InspectorName: "I"}
	resp := postJSON(t, ts.URL+"/api/inspections", good)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, err := database.Exec(
		`INSERT INTO inspections (id, record_date, data) VALUES (?, ?, ?)`,
		"corrupt-1", "2025-01-01", "{not json",
	)
	require.NoError(t, err)

	resp, err = http.Get(ts.URL + "/api/inspections")
	require.NoError(t, err)
	assert.Equal(t, "1", resp.Header.Get("X-Corrupt-Records"))
	list := decodeBody[[]domain.Inspection](t, resp)
	require.Len(t, list, 1)
}

func TestAllCorruptCollectionStillLists(t *testing.T) {
	ts, database := newTestServerWithDB(t, &stubAssistant{})

	for i, id := range []string{"corrupt-1", "corrupt-2"} {
		_, err := database.Exec(
			`INSERT INTO inspections (id, record_date, data) VALUES (?, ?, ?)`,
			id, fmt.Sprintf("2025-01-0%d", i+1), "{not json",
		)
		require.NoError(t, err)
	}

	resp, err := http.Get(ts.URL + "/api/inspections")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2", resp.Header.Get("X-Corrupt-Records"))
	assert.Empty(t, decodeBody[[]domain.Inspection](t, resp))

	_, err = database.Exec(
		`INSERT INTO clients (id, record_date, data) VALUES (?, ?, ?)`,
		"corrupt-3", "2025-01-01", "not json either",
	)
	require.NoError(t, err)

	resp, err = http.Get(ts.URL + "/api/clients")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("X-Corrupt-Records"))
	assert.Empty(t, decodeBody[[]domain.Client](t, resp))
}

func TestDashboardAndTaxonomyEndpoints(t *testing.T) {
	ts := newTestServer(t, &stubAssistant{})

	resp, err := http.Get(ts.URL + "/api/dashboard")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	overview := decodeBody[service.Overview](t, resp)
	assert.Zero(t, overview.InspectionCount)

	resp, err = http.Get(ts.URL + "/api/taxonomy")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tax := decodeBody[taxonomy.Taxonomy](t, resp)
	assert.NotEmpty(t, tax.Categories)
	var names []string
	for _, c := range tax.Categories {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "Plumbing")
}

func TestExportRegistersDownload(t *testing.T) {
	ts := newTestServer(t, &stubAssistant{})

	resp, err := http.Get(ts.URL + "/api/export/registers")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Disposition"), "attachment"))
}

func TestSecurityHeaders(t *testing.T) {
	ts := newTestServer(t, &stubAssistant{})

	resp, err := http.Get(ts.URL + "/api/taxonomy")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
}
