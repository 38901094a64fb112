package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"conguide/internal/delivery/http/helpers"
	"conguide/internal/domain"
	"conguide/internal/services"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// contentTypes maps grid formats to the media type of the rendered document.
var contentTypes = map[string]string{
	domain.FormatHTML:     "text/html; charset=utf-8",
	domain.FormatInDesign: "text/plain; charset=windows-1252",
	domain.FormatXML:      "application/xml; charset=utf-8",
}

// SliceSummary describes one rendered table.
type SliceSummary struct {
	Name    string   `json:"name"`
	Day     string   `json:"day"`
	Start   string   `json:"start"`
	End     string   `json:"end"`
	Columns int      `json:"columns"`
	Rooms   []string `json:"rooms"`
}

// ListSlicesSuccessResponse is the success response envelope for GET /slices/{format} (200).
type ListSlicesSuccessResponse struct {
	Data  []SliceSummary    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListFormatsSuccessResponse is the success response envelope for GET /formats (200).
type ListFormatsSuccessResponse struct {
	Data  []string          `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SendProofRequest is the request body for POST /grid/proof.
type SendProofRequest struct {
	Email string `json:"email"`
}

// Validate implements Validator.
func (r SendProofRequest) Validate() []string {
	var errs []string
	if r.Email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegex.MatchString(r.Email) {
		errs = append(errs, "email is invalid")
	}
	return errs
}

// SendProofResponse is the data payload for POST /grid/proof (200).
type SendProofResponse struct {
	Status string   `json:"status"`
	Slices []string `json:"slices"`
}

// SendProofSuccessResponse is the success response envelope for POST /grid/proof (200).
type SendProofSuccessResponse struct {
	Data  SendProofResponse `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type GridController struct {
	Logger     *slog.Logger
	Grid       domain.GridService
	Email      domain.EmailService
	Convention string
	// Now stamps proof mails; defaults to time.Now.
	Now func() time.Time
}

func NewGridController(logger *slog.Logger, grid domain.GridService, email domain.EmailService, convention string) *GridController {
	return &GridController{
		Logger:     logger,
		Grid:       grid,
		Email:      email,
		Convention: convention,
		Now:        time.Now,
	}
}

// Health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.status is ok"
// @Router /health [get]
func (c *GridController) Health(w http.ResponseWriter, _ *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListFormats godoc
// @Summary List grid formats
// @Description Output formats that have both a layout and a renderer configured.
// @Tags grid
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListFormatsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /formats [get]
func (c *GridController) ListFormats(w http.ResponseWriter, _ *http.Request) {
	formats := c.Grid.Formats()
	if formats == nil {
		formats = []string{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, formats)
}

// GetDocument godoc
// @Summary Render the grid
// @Description Returns the complete grid document in the requested format (html, indesign, xml).
// @Tags grid
// @Produce html
// @Produce plain
// @Produce xml
// @Security BearerAuth
// @Param format path string true "Output format"
// @Success 200 {string} string "rendered document"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /grid/{format} [get]
func (c *GridController) GetDocument(w http.ResponseWriter, r *http.Request) {
	format := r.PathValue("format")
	doc, err := c.Grid.Document(r.Context(), format)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	ct, ok := contentTypes[format]
	if !ok {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// ListSlices godoc
// @Summary List grid tables
// @Description Non-empty day and time-slice tables for the format, with the rooms each one shows.
// @Tags grid
// @Produce json
// @Security BearerAuth
// @Param format path string true "Output format"
// @Success 200 {object} controllers.ListSlicesSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /slices/{format} [get]
func (c *GridController) ListSlices(w http.ResponseWriter, r *http.Request) {
	slices, err := c.Grid.Slices(r.Context(), r.PathValue("format"))
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	out := make([]SliceSummary, 0, len(slices))
	for _, gs := range slices {
		s := SliceSummary{
			Name:    gs.Name,
			Start:   gs.Start.String24(),
			End:     gs.End.String24(),
			Columns: gs.Columns(),
			Rooms:   make([]string, 0, len(gs.Rooms)),
		}
		if gs.Day != nil {
			s.Day = gs.Day.Name
		}
		for _, room := range gs.Rooms {
			s.Rooms = append(s.Rooms, room.String())
		}
		out = append(out, s)
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, out)
}

// SendProof godoc
// @Summary Mail a grid proof
// @Description Renders the HTML grid and mails it to the given address.
// @Tags grid
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SendProofRequest true "Recipient"
// @Success 200 {object} controllers.SendProofSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /grid/proof [post]
func (c *GridController) SendProof(w http.ResponseWriter, r *http.Request) {
	var req SendProofRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	data, err := services.BuildGridProof(r.Context(), c.Grid, c.Convention, c.Now().Format(time.DateTime))
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	data.Email = req.Email
	if err := c.Email.SendGridProof(r.Context(), data); err != nil {
		c.writeError(w, r, err)
		return
	}
	slices := data.Slices
	if slices == nil {
		slices = []string{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SendProofResponse{Status: "sent", Slices: slices})
}

func (c *GridController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
}
