package display

import (
	"errors"
	"fmt"

	"github.com/smokyabdulrahman/jadwal-sholat/internal/api"
	"github.com/smokyabdulrahman/jadwal-sholat/internal/prayer"
	"github.com/smokyabdulrahman/jadwal-sholat/internal/session"
)

// Message maps an operation error to the text shown to the operator.
func Message(err error) string {
	var se *api.StatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, api.ErrCanceled):
		return "Permintaan dibatalkan."
	case errors.Is(err, api.ErrTimeout):
		return "Koneksi timeout. Coba lagi nanti."
	case errors.Is(err, api.ErrUnavailable):
		return "Tidak dapat terhubung ke internet."
	case errors.As(err, &se):
		return fmt.Sprintf("Error: Status code %d", se.Code)
	case errors.Is(err, api.ErrNotFound):
		return "Data tidak ditemukan"
	case errors.Is(err, session.ErrEmptyCity):
		return "Nama kota tidak boleh kosong!"
	case errors.Is(err, session.ErrBadDate):
		return "Format tanggal salah! Gunakan format DD-MM-YYYY"
	case errors.Is(err, prayer.ErrMalformedSchedule):
		return fmt.Sprintf("Jadwal tidak lengkap: %v", err)
	default:
		return fmt.Sprintf("Terjadi kesalahan: %v", err)
	}
}
