package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsCSV = "Date,Tournoi,Résultat\n" +
	"2023-07-16,Wimbledon,\"1-6, 7-6(6), 6-1, 3-6, 6-4\"\n" +
	"2023-03-19,Indian Wells,6-3 6-2\n" +
	"2023-03-31,Miami Open,7-6(4) 6-7(4) 6-3\n" +
	"2023-05-01,Madrid,NA\n"

func TestUploadCSV(t *testing.T) {
	router := newTestRouter(t, testConfig())

	body, contentType, err := createTestCSV(resultsCSV)
	require.NoError(t, err)

	w := doRequest(router, http.MethodPost, "/api/v1/upload/csv", body, contentType)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "results.csv", resp.Filename)
	assert.Equal(t, "Résultat", resp.Columns.Score)
	assert.Equal(t, "Tournoi", resp.Columns.Tournament)
	assert.Equal(t, 4, resp.Summary.Total)
	assert.Len(t, resp.Preview, 2, "preview is capped at PREVIEW_ROWS")
	assert.Equal(t, 5, resp.Preview[0].SetsCount)
	assert.Equal(t, "1\n0\n1\n-1", resp.LabelsText)
	assert.NotEmpty(t, resp.RunID)
}

func TestUploadCSV_RepeatedTieBreakSetsCountOnce(t *testing.T) {
	router := newTestRouter(t, testConfig())

	// 7-6(4) and 7-6(5) share the base score 7-6, leaving two unique sets.
	body, contentType, err := createTestCSV("Score\n7-6(4) 6-7(4) 7-6(5)\n")
	require.NoError(t, err)

	w := doRequest(router, http.MethodPost, "/api/v1/upload/csv", body, contentType)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Preview, 1)
	assert.Equal(t, 2, resp.Preview[0].SetsCount)
	assert.Equal(t, "0", resp.LabelsText)
}

func TestUploadCSV_ChunkedBodyTooLarge(t *testing.T) {
	router := newBodyLimitRouter(t, testConfig(), 512)

	body, contentType, err := createTestCSV("Score\n" + strings.Repeat("6-4 6-3\n", 1000))
	require.NoError(t, err)

	// MultiReader hides the length so the request is sent without Content-Length.
	w := doRequest(router, http.MethodPost, "/api/v1/upload/csv", io.MultiReader(body), contentType)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "TOO_LARGE")
}

func TestUploadHTML_FailuresReachStats(t *testing.T) {
	router := newTestRouter(t, testConfig())

	for i := 0; i < 3; i++ {
		body, contentType, err := createTestUpload("html_file", "page.html", "<html><body><p>no table</p></body></html>", nil)
		require.NoError(t, err)

		w := doRequest(router, http.MethodPost, "/api/v1/upload/html", body, contentType)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		require.Contains(t, w.Body.String(), "PARSE_ERROR")
	}

	w := doRequest(router, http.MethodGet, "/api/v1/stats", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Stats struct {
			TotalRuns      int64    `json:"total_runs"`
			FailedRuns     int64    `json:"failed_runs"`
			Issues         []string `json:"issues"`
			RecentFailures []struct {
				Operation string `json:"operation"`
				Code      string `json:"code"`
			} `json:"recent_failures"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.Stats.TotalRuns)
	assert.Equal(t, int64(3), resp.Stats.FailedRuns)
	require.Len(t, resp.Stats.RecentFailures, 3)
	assert.Equal(t, "ReadTable", resp.Stats.RecentFailures[0].Operation)
	assert.Equal(t, "PARSE_ERROR", resp.Stats.RecentFailures[0].Code)
	assert.Contains(t, resp.Stats.Issues, "Uploads often fail to parse")
}

func TestUploadCSV_PastedData(t *testing.T) {
	router := newTestRouter(t, testConfig())

	form := url.Values{"data": {"Score\n6-4 6-3\n"}}
	w := doRequest(router, http.MethodPost, "/api/v1/upload/csv",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "0", resp.LabelsText)
	assert.Empty(t, resp.Filename)
}

func TestUploadCSV_ColumnOverride(t *testing.T) {
	router := newTestRouter(t, testConfig())

	body, contentType, err := createTestUpload("csv_file", "sets.csv",
		"Match,Sets\nFinal,6-4 3-6 6-3\n", map[string]string{"score_column": "Sets"})
	require.NoError(t, err)

	w := doRequest(router, http.MethodPost, "/api/v1/upload/csv", body, contentType)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"labels_text":"1"`)
}

func TestUploadCSV_Errors(t *testing.T) {
	router := newTestRouter(t, testConfig())

	testCases := []struct {
		name           string
		field          string
		filename       string
		content        string
		fields         map[string]string
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "no table",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_INPUT",
		},
		{
			name:           "wrong extension",
			field:          "csv_file",
			filename:       "results.xlsx",
			content:        "Score\n6-4 6-3\n",
			expectedStatus: http.StatusUnsupportedMediaType,
			expectedCode:   "UNSUPPORTED_FORMAT",
		},
		{
			name:           "no score column",
			field:          "csv_file",
			filename:       "players.csv",
			content:        "Player,Country\nNadal,ESP\n",
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "COLUMN_NOT_FOUND",
		},
		{
			name:           "unknown override",
			field:          "csv_file",
			filename:       "results.csv",
			content:        "Score\n6-4 6-3\n",
			fields:         map[string]string{"tournament_column": "Event"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_INPUT",
		},
		{
			name:           "empty file",
			field:          "csv_file",
			filename:       "empty.csv",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "PARSE_ERROR",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			body, contentType, err := createTestUpload(tc.field, tc.filename, tc.content, tc.fields)
			require.NoError(t, err)

			w := doRequest(router, http.MethodPost, "/api/v1/upload/csv", body, contentType)
			assert.Equal(t, tc.expectedStatus, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), tc.expectedCode)
		})
	}
}

func TestUploadHTML(t *testing.T) {
	router := newTestRouter(t, testConfig())

	page := `<html><body><table>
		<tr><th>Event</th><th>Result</th></tr>
		<tr><td>Roland Garros</td><td>7–6<sup>9</sup> 6–7<sup>7</sup> 6–3</td></tr>
		<tr><td>Roland Garros</td><td>6–3<br>4–6<br>7–5<br>3–6<br>6–4</td></tr>
	</table></body></html>`

	body, contentType, err := createTestUpload("html_file", "draw.html", page, nil)
	require.NoError(t, err)

	w := doRequest(router, http.MethodPost, "/api/v1/upload/html", body, contentType)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Result", resp.Columns.Score)
	assert.Equal(t, "Event", resp.Columns.Tournament)
	assert.Equal(t, "0\n1", resp.LabelsText)
}

func TestExport(t *testing.T) {
	router := newTestRouter(t, testConfig())

	body, contentType, err := createTestCSV(resultsCSV)
	require.NoError(t, err)

	w := doRequest(router, http.MethodPost, "/api/v1/export", body, contentType)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, `attachment; filename="tennis_results_classified.csv"`, w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))

	expected := "Résultat,Tournoi,Straight_Decider\n" +
		"\"1-6, 7-6(6), 6-1, 3-6, 6-4\",Wimbledon,1\n" +
		"6-3 6-2,Indian Wells,0\n" +
		"7-6(4) 6-7(4) 6-3,Miami Open,1\n" +
		",Madrid,-1\n"
	assert.Equal(t, expected, w.Body.String())
}

func TestExport_Formats(t *testing.T) {
	router := newTestRouter(t, testConfig())

	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			body, contentType, err := createTestCSV(resultsCSV)
			require.NoError(t, err)

			w := doRequest(router, http.MethodPost, "/api/v1/export?format="+format, body, contentType)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, `attachment; filename="tennis_results_classified.`+format+`"`, w.Header().Get("Content-Disposition"))
			assert.Contains(t, w.Body.String(), "straight_decider")
		})
	}

	body, contentType, err := createTestCSV(resultsCSV)
	require.NoError(t, err)
	w := doRequest(router, http.MethodPost, "/api/v1/export?format=xlsx", body, contentType)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}
