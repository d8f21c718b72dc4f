package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

const testPerPage = 100

// fakeCFZone serves the Cloudflare list-records endpoint for a zone holding
// recordCount A records, paginated the way the real API paginates.
func fakeCFZone(t *testing.T, recordCount int, pagesServed *[]int) *httptest.Server {
	t.Helper()

	totalPages := (recordCount + testPerPage - 1) / testPerPage

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/client/v4/zones/z1/dns_records", r.URL.Path)

		page := 1
		if p := r.URL.Query().Get("page"); p != "" {
			var err error
			page, err = strconv.Atoi(p)
			require.NoError(t, err)
		}
		*pagesServed = append(*pagesServed, page)

		start := (page - 1) * testPerPage
		end := start + testPerPage
		if end > recordCount {
			end = recordCount
		}

		records := []map[string]any{}
		for i := start; i < end; i++ {
			records = append(records, map[string]any{
				"id":      fmt.Sprintf("r%d", i),
				"type":    "A",
				"name":    fmt.Sprintf("h%d.example.com", i),
				"content": "1.2.3.4",
			})
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":  true,
			"errors":   []any{},
			"messages": []any{},
			"result":   records,
			"result_info": map[string]any{
				"page":        page,
				"per_page":    testPerPage,
				"count":       len(records),
				"total_count": recordCount,
				"total_pages": totalPages,
			},
		})
	}))
}

func TestCloudflareListRecordsFollowsPagination(t *testing.T) {
	var pagesServed []int
	srv := fakeCFZone(t, 150, &pagesServed)
	defer srv.Close()

	d := &cloudflare{token: "test-token", baseURL: srv.URL + "/client/v4"}

	records, err := d.ListRecords(context.Background(), "z1")
	require.NoError(t, err)

	// Every record of the zone is visible, including the second page.
	require.Len(t, records, 150)
	require.Equal(t, []int{1, 2}, pagesServed)
	require.Equal(t, "r0", records[0].ID)
	require.Equal(t, "r149", records[149].ID)
	require.Equal(t, "h149.example.com", records[149].Name)
}

func TestCloudflareListRecordsSinglePage(t *testing.T) {
	var pagesServed []int
	srv := fakeCFZone(t, 3, &pagesServed)
	defer srv.Close()

	d := &cloudflare{token: "test-token", baseURL: srv.URL + "/client/v4"}

	records, err := d.ListRecords(context.Background(), "z1")
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, []int{1}, pagesServed)
}
