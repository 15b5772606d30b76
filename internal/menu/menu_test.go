package menu

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smokyabdulrahman/jadwal-sholat/internal/api"
	"github.com/smokyabdulrahman/jadwal-sholat/internal/clock"
	"github.com/smokyabdulrahman/jadwal-sholat/internal/display"
	"github.com/smokyabdulrahman/jadwal-sholat/internal/session"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

type stubFetcher struct {
	queries []api.Query
	err     error
}

func (f *stubFetcher) FetchByCity(_ context.Context, q api.Query) (*api.Data, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return &api.Data{
		Timings: api.Timings{
			Imsak:    "04:20",
			Fajr:     "04:30",
			Sunrise:  "05:48",
			Dhuhr:    "12:00",
			Asr:      "15:15",
			Maghrib:  "18:00",
			Isha:     "19:15",
			Midnight: "23:58",
		},
		Date: api.DateInfo{Readable: "25 Dec 2024"},
	}, nil
}

func runMenu(t *testing.T, f *stubFetcher, city, input string) string {
	t.Helper()
	display.SetEnabled(false)

	now := time.Date(2024, 12, 25, 13, 0, 0, 0, time.UTC)
	start := func(name string) (*session.Session, error) {
		return session.New(f, clock.Fixed(now), name, "", api.MethodKemenag)
	}

	var out bytes.Buffer
	m := New(NewScanner(strings.NewReader(input), &out), &out, start)
	require.NoError(t, m.Run(context.Background(), city))
	return out.String()
}

func TestRun_AsksForCityAndExits(t *testing.T) {
	f := &stubFetcher{}
	out := runMenu(t, f, "", "Bandung\n6\n")

	assert.Contains(t, out, "APLIKASI JADWAL SHOLAT INDONESIA")
	assert.Contains(t, out, "Masukkan nama kota di Indonesia:")
	assert.Contains(t, out, "kota: Bandung")
	assert.Contains(t, out, "Jangan lupa sholat tepat waktu!")
	assert.Empty(t, f.queries)
}

func TestRun_EmptyCityEndsRun(t *testing.T) {
	out := runMenu(t, &stubFetcher{}, "", "   \n")

	assert.Contains(t, out, "Nama kota tidak boleh kosong!")
	assert.NotContains(t, out, "MENU")
}

func TestRun_Today(t *testing.T) {
	f := &stubFetcher{}
	out := runMenu(t, f, "Jakarta", "1\n\n6\n")

	require.Len(t, f.queries, 1)
	assert.Equal(t, "Jakarta", f.queries[0].City)
	assert.Equal(t, "Indonesia", f.queries[0].Country)
	assert.Equal(t, api.MethodKemenag, f.queries[0].Method)
	assert.Empty(t, f.queries[0].Date)

	assert.Contains(t, out, "Mengambil data untuk Jakarta...")
	assert.Contains(t, out, "Tanggal: 25 Dec 2024")
	assert.Contains(t, out, "Ashar")
	assert.Contains(t, out, "15:15")
	assert.Contains(t, out, "Tekan ENTER untuk melanjutkan...")
}

func TestRun_Tomorrow(t *testing.T) {
	f := &stubFetcher{}
	runMenu(t, f, "Jakarta", "2\n\n6\n")

	require.Len(t, f.queries, 1)
	assert.Equal(t, "26-12-2024", f.queries[0].Date)
}

func TestRun_SpecificDate(t *testing.T) {
	f := &stubFetcher{}
	out := runMenu(t, f, "Jakarta", "3\n17-08-2025\n\n6\n")

	require.Len(t, f.queries, 1)
	assert.Equal(t, "17-08-2025", f.queries[0].Date)
	assert.Contains(t, out, "Contoh: 25-12-2024")
}

func TestRun_BadDateSkipsFetch(t *testing.T) {
	f := &stubFetcher{}
	out := runMenu(t, f, "Jakarta", "3\n2025/08/17\n\n6\n")

	assert.Empty(t, f.queries)
	assert.Contains(t, out, "Format tanggal salah! Gunakan format DD-MM-YYYY")
}

func TestRun_Nearest(t *testing.T) {
	out := runMenu(t, &stubFetcher{}, "Jakarta", "4\n\n6\n")

	assert.Contains(t, out, "Waktu sholat terdekat: Ashar (15:15)")
	assert.Contains(t, out, "Sisa waktu: 2 jam 15 menit")
}

func TestRun_ChangeCity(t *testing.T) {
	f := &stubFetcher{}
	out := runMenu(t, f, "Jakarta", "5\nSurabaya\n\n1\n\n6\n")

	assert.Contains(t, out, "Kota berhasil diganti ke: Surabaya")
	require.Len(t, f.queries, 1)
	assert.Equal(t, "Surabaya", f.queries[0].City)
}

func TestRun_ChangeCityBlankKeepsCurrent(t *testing.T) {
	f := &stubFetcher{}
	out := runMenu(t, f, "Jakarta", "5\n\n\n1\n\n6\n")

	assert.Contains(t, out, "Nama kota tidak boleh kosong!")
	require.Len(t, f.queries, 1)
	assert.Equal(t, "Jakarta", f.queries[0].City)
}

func TestRun_InvalidChoice(t *testing.T) {
	out := runMenu(t, &stubFetcher{}, "Jakarta", "9\n\n6\n")
	assert.Contains(t, out, "Pilihan tidak valid! Silakan pilih 1-6.")
}

func TestRun_FetchErrorKeepsLooping(t *testing.T) {
	f := &stubFetcher{err: &api.StatusError{Code: 500}}
	out := runMenu(t, f, "Jakarta", "1\n\n4\n\n6\n")

	assert.Equal(t, 2, strings.Count(out, "Error: Status code 500"))
	assert.Contains(t, out, "Jangan lupa sholat tepat waktu!")
}

func TestRun_EOFEndsQuietly(t *testing.T) {
	out := runMenu(t, &stubFetcher{}, "Jakarta", "1\n")
	assert.NotContains(t, out, "Jangan lupa sholat tepat waktu!")
}

type failingReader struct{ err error }

func (r failingReader) Prompt(string) (string, error) { return "", r.err }
func (r failingReader) Close() error                  { return nil }

func TestRun_ReaderErrorPropagates(t *testing.T) {
	display.SetEnabled(false)
	boom := errors.New("boom")
	start := func(name string) (*session.Session, error) {
		return session.New(&stubFetcher{}, clock.Real(), name, "", 20)
	}

	var out bytes.Buffer
	err := New(failingReader{err: boom}, &out, start).Run(context.Background(), "Jakarta")
	assert.ErrorIs(t, err, boom)
}

func TestRun_CanceledContextEndsRun(t *testing.T) {
	display.SetEnabled(false)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"code":200,"status":"OK","data":{}}`))
	}))
	defer srv.Close()

	client := api.NewClient(api.WithBaseURL(srv.URL))
	start := func(name string) (*session.Session, error) {
		return session.New(client, clock.Real(), name, "", api.MethodKemenag)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	m := New(NewScanner(strings.NewReader("1\n\n1\n\n6\n"), &out), &out, start)
	require.NoError(t, m.Run(ctx, "Jakarta"))

	assert.Zero(t, hits.Load())
	assert.NotContains(t, out.String(), "Tidak dapat terhubung ke internet.")
	assert.NotContains(t, out.String(), "MENU")
}

// cancelingFetcher cancels the run while a fetch is in flight.
type cancelingFetcher struct {
	cancel context.CancelFunc
	calls  int
}

func (f *cancelingFetcher) FetchByCity(ctx context.Context, _ api.Query) (*api.Data, error) {
	f.calls++
	f.cancel()
	return nil, fmt.Errorf("%w: %w", api.ErrCanceled, ctx.Err())
}

func TestRun_InterruptDuringFetchEndsRun(t *testing.T) {
	display.SetEnabled(false)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := &cancelingFetcher{cancel: cancel}
	start := func(name string) (*session.Session, error) {
		return session.New(f, clock.Real(), name, "", api.MethodKemenag)
	}

	var out bytes.Buffer
	m := New(NewScanner(strings.NewReader("1\n\n1\n\n6\n"), &out), &out, start)
	require.NoError(t, m.Run(ctx, "Jakarta"))

	assert.Equal(t, 1, f.calls)
	assert.Equal(t, 1, strings.Count(out.String(), "Permintaan dibatalkan."))
	assert.NotContains(t, out.String(), "Tekan ENTER untuk melanjutkan...")
	assert.NotContains(t, out.String(), "Jangan lupa sholat tepat waktu!")
}
