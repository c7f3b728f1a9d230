package handler

// artist_csv.go implements the CSV surface of the artists module:
// uploading a file, importing it as one all-or-nothing batch, and
// exporting the acting manager's roster with delayed file cleanup.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/artist-management/internal/config"
	"github.com/iliyamo/artist-management/internal/queue"
	"github.com/iliyamo/artist-management/internal/repository"
	queue_publisher "github.com/iliyamo/artist-management/internal/service"
	"github.com/iliyamo/artist-management/internal/utils"
)

// maxUploadBytes caps uploaded CSV files at 5 MiB.
const maxUploadBytes = 5 << 20

// CSVHandler bundles the dependencies of the import/export endpoints.
type CSVHandler struct {
	Cfg     config.Config
	Artists *repository.ArtistRepo
}

func NewCSVHandler(cfg config.Config, a *repository.ArtistRepo) *CSVHandler {
	if a == nil {
		panic("nil repository passed to NewCSVHandler")
	}
	return &CSVHandler{Cfg: cfg, Artists: a}
}

// Upload handles POST /v1/upload: accepts one multipart CSV file, stores
// it under the upload directory with a sanitized timestamped name and
// returns that name for a subsequent import call.
func (h *CSVHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no file uploaded"})
	}
	if fh.Size > maxUploadBytes {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file exceeds 5MB limit"})
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".csv") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "only CSV files are allowed"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "file upload error"})
	}
	defer src.Close()

	if err := os.MkdirAll(h.Cfg.UploadDir, 0o755); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "file upload error"})
	}
	name := fmt.Sprintf("%s_%d.csv", sanitizeName(fh.Filename), time.Now().UnixMilli())
	dst, err := os.Create(filepath.Join(h.Cfg.UploadDir, name))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "file upload error"})
	}
	defer dst.Close()
	if _, err := dst.ReadFrom(src); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "file upload error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "file uploaded successfully", "filePath": name})
}

// sanitizeName strips the extension and replaces anything outside
// [A-Za-z0-9] so uploaded names cannot traverse directories.
func sanitizeName(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	out := make([]rune, 0, len(base))
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "upload"
	}
	return string(out)
}

type importReq struct {
	FileName string `json:"file_name" validate:"required"`
}

// Import handles POST /v1/artists/import. The referenced file is parsed
// and validated in full before any database write; the rows are then
// applied through one outer transaction, so a conflict or error on any
// row leaves the catalog untouched.
func (h *CSVHandler) Import(c echo.Context) error {
	managerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req importReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file_name required"})
	}

	// filepath.Base defuses any path components smuggled into the name.
	path := filepath.Join(h.Cfg.UploadDir, filepath.Base(req.FileName))
	f, err := os.Open(path)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "uploaded file not found"})
	}
	defer f.Close()

	rows, err := utils.ParseArtistCSV(f)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("invalid CSV: %v", err)})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	created, err := h.Artists.ImportBatch(ctx, rows, managerID, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "import failed"})
	}

	// The uploaded file has served its purpose.
	_ = os.Remove(path)

	return c.JSON(http.StatusCreated, echo.Map{"message": "artists imported successfully", "imported": created})
}

// Export handles GET /v1/artists/export: writes the acting manager's
// roster to a CSV file, serves it as an attachment and publishes a
// cleanup event so the file is removed after the configured delay.
// Cleanup is fire-and-forget; a failed publish never fails the export.
func (h *CSVHandler) Export(c echo.Context) error {
	managerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	artists, err := h.Artists.ExportByManager(ctx, managerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
	}

	rows := make([]utils.ArtistRow, 0, len(artists))
	for _, a := range artists {
		rows = append(rows, utils.ArtistRow{
			FirstName:        a.User.FirstName,
			LastName:         a.User.LastName,
			Email:            a.User.Email,
			DOB:              a.DOB,
			Gender:           a.Gender,
			Address:          a.Address,
			FirstReleaseYear: a.FirstReleaseYear,
			AlbumsReleased:   a.AlbumsReleased,
		})
	}

	if err := os.MkdirAll(h.Cfg.ExportDir, 0o755); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
	}
	now := time.Now().UTC()
	path := filepath.Join(h.Cfg.ExportDir, fmt.Sprintf("artists_%d_%d.csv", managerID, now.UnixMilli()))
	f, err := os.Create(path)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
	}
	if err := utils.WriteArtistCSV(f, rows); err != nil {
		f.Close()
		_ = os.Remove(path)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
	}
	f.Close()

	_ = queue_publisher.PublishExportCreated(ctx, queue.ExportCreatedEvent{
		Path:      path,
		ManagerID: managerID,
		CreatedAt: now.Format(time.RFC3339),
		ExpiresAt: now.Add(time.Duration(h.Cfg.ExportTTLMin) * time.Minute).Format(time.RFC3339),
	})

	return c.Attachment(path, "artists.csv")
}
