package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/JonMunkholm/OrderSheet/internal/core"
	"github.com/JonMunkholm/OrderSheet/internal/export"
	"github.com/JonMunkholm/OrderSheet/internal/logging"
	"github.com/JonMunkholm/OrderSheet/internal/web/views"
)

const (
	// multipartOverhead is allowed on top of the file size limit for the
	// multipart framing.
	multipartOverhead = 1 << 20

	// multipartMemory is kept in memory before parts spill to disk.
	multipartMemory = 8 << 20

	recentActivity = 10

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	xlsxFileName    = "ordersheet.xlsx"
)

// Flash keys passed through the redirect after a form post.
const (
	flashImported     = "imported"
	flashImportFailed = "import_failed"
	flashStockSaved   = "stock_saved"
	flashReset        = "reset"
)

var flashes = map[string]views.Flash{
	flashImported:     {Text: "読み込みました ✅"},
	flashImportFailed: {Text: "読み込みに失敗しました（CSV形式/文字コードを確認）", Error: true},
	flashStockSaved:   {Text: "在庫を保存しました"},
	flashReset:        {Text: "リセットしました"},
}

// handleHome renders the wizard page.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := sessionID(r)

	st, err := s.service.State(ctx, session)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	data := views.HomeData{
		Catalog:  s.service.Catalog(),
		State:    st,
		Flash:    flashes[r.URL.Query().Get("flash")],
		Activity: s.service.Activity(session, recentActivity),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.Home(data).Render(ctx, w); err != nil {
		logging.FromContext(ctx).Error("render home", "error", err)
	}
}

// handleImportForm takes the file from the home page form and redirects back.
// A bad file is reported on the page, not as an error response.
func (s *Server) handleImportForm(w http.ResponseWriter, r *http.Request) {
	file, name, err := s.openUpload(w, r)
	if err == nil {
		defer file.Close()
		_, err = s.service.ImportCSV(r.Context(), sessionID(r), name, file)
	}

	switch {
	case err == nil:
		redirectHome(w, r, flashImported)
	case errors.Is(err, core.ErrImportFailed), statusFor(err) == http.StatusRequestEntityTooLarge:
		redirectHome(w, r, flashImportFailed)
	default:
		respondError(w, r, err, statusFor(err))
	}
}

// handleStockForm saves the stock counts and marks the stock step done.
// Blank, unreadable or negative entries count as 0.
func (s *Server) handleStockForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := sessionID(r)

	if err := r.ParseForm(); err != nil {
		respondError(w, r, fmt.Errorf("%w: %w", core.ErrInvalidStock, err), http.StatusBadRequest)
		return
	}

	items := s.service.Catalog().StockInputItems()
	stock := make(map[string]int, len(items))
	for _, it := range items {
		n := core.ParseQuantity(r.PostForm.Get(views.StockField(it.ID)))
		if n < 0 {
			n = 0
		}
		stock[it.ID] = n
	}

	if _, err := s.service.SetStock(ctx, session, stock); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	if _, err := s.service.SetStockDone(ctx, session, true); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	redirectHome(w, r, flashStockSaved)
}

// handleResetForm clears the session and redirects home.
func (s *Server) handleResetForm(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Reset(r.Context(), sessionID(r)); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	redirectHome(w, r, flashReset)
}

// handlePrint renders the printable sheet and records the export.
// The optional date query parameter is printed in the header.
func (s *Server) handlePrint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := s.exportPayload(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := export.RenderSheet(ctx, w, p); err != nil {
		logging.FromContext(ctx).Error("render sheet", "error", err)
	}
}

// handleWorkbook sends the sheet as an XLSX download and records the export.
func (s *Server) handleWorkbook(w http.ResponseWriter, r *http.Request) {
	p, ok := s.exportPayload(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, p); err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+xlsxFileName+`"`)
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).Warn("write workbook", "error", err)
	}
}

// exportPayload marks the session exported and builds its sheet. On failure
// the error response has been written.
func (s *Server) exportPayload(w http.ResponseWriter, r *http.Request) (export.PrintPayload, bool) {
	ctx := r.Context()
	session := sessionID(r)

	if _, err := s.service.MarkExported(ctx, session); err != nil {
		respondError(w, r, err, statusFor(err))
		return export.PrintPayload{}, false
	}
	p, err := s.service.PrintPayload(ctx, session, r.URL.Query().Get("date"))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return export.PrintPayload{}, false
	}
	return p, true
}

// openUpload returns the uploaded file and its name. Multipart requests carry
// it in the "file" field; any other body is taken as the file itself, named
// by the name query parameter.
func (s *Server) openUpload(w http.ResponseWriter, r *http.Request) (io.ReadCloser, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxFileSize+multipartOverhead)

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		name := r.URL.Query().Get("name")
		if name == "" {
			name = "upload.csv"
		}
		return r.Body, name, nil
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("%w: %w", core.ErrImportFailed, err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("%w: no file provided", core.ErrImportFailed)
	}
	return file, header.Filename, nil
}

func redirectHome(w http.ResponseWriter, r *http.Request, flash string) {
	http.Redirect(w, r, "/?flash="+flash, http.StatusSeeOther)
}
