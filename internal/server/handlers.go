package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/runnerr0/kickback/internal/activity"
	"github.com/runnerr0/kickback/internal/logging"
	"github.com/runnerr0/kickback/internal/pipeline"
	"github.com/runnerr0/kickback/internal/takeout"
)

// lastYearDays is the window applied by the "last 12 months" toggle.
const lastYearDays = 365

type categoryOption struct {
	Value   string
	Title   string
	Checked bool
}

type page struct {
	Categories  []categoryOption
	Recent      bool
	Label       bool
	Mood        bool
	MaxUploadMB int

	Receipt string
	Events  int
	Missing string
	Error   string
}

func (s *Server) newPage(opts pipeline.Options) page {
	selected := make(map[activity.Category]bool, len(opts.Categories))
	for _, c := range opts.Categories {
		selected[c] = true
	}
	p := page{
		Recent:      opts.RecencyDays > 0,
		Label:       opts.Label,
		Mood:        opts.Mood,
		MaxUploadMB: s.cfg.Server.MaxUploadMB,
	}
	for _, c := range activity.Categories() {
		p.Categories = append(p.Categories, categoryOption{
			Value:   string(c),
			Title:   c.Title(),
			Checked: len(selected) == 0 || selected[c],
		})
	}
	return p
}

func (s *Server) render(c echo.Context, status int, p page) error {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "index.html", p); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return c.HTMLBlob(status, buf.Bytes())
}

func (s *Server) handleIndex(c echo.Context) error {
	return s.render(c, http.StatusOK, s.newPage(pipeline.OptionsFromConfig(s.cfg)))
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleReceipt renders the receipt inside the upload page.
func (s *Server) handleReceipt(c echo.Context) error {
	opts, err := s.options(c)
	if err != nil {
		p := s.newPage(pipeline.OptionsFromConfig(s.cfg))
		p.Error = err.Error()
		return s.render(c, http.StatusBadRequest, p)
	}

	p := s.newPage(opts)
	report, err := s.generate(c, opts)
	if err != nil {
		var httpErr *echo.HTTPError
		if !errors.As(err, &httpErr) {
			return err
		}
		p.Error = fmt.Sprint(httpErr.Message)
		return s.render(c, httpErr.Code, p)
	}

	p.Receipt = report.Receipt
	for _, sum := range report.Summaries {
		p.Events += sum.TotalCount
	}
	if report.Missing != nil {
		p.Missing = report.Missing.Error()
	}
	return s.render(c, http.StatusOK, p)
}

// handleAPIReceipt returns the report as JSON.
func (s *Server) handleAPIReceipt(c echo.Context) error {
	opts, err := s.options(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	report, err := s.generate(c, opts)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report.JSON())
}

// generate runs the pipeline over the uploaded archive. Client mistakes
// come back as *echo.HTTPError.
func (s *Server) generate(c echo.Context, opts pipeline.Options) (*pipeline.Report, error) {
	fh, err := c.FormFile("archive")
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "no archive uploaded")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	bundle, err := takeout.FromZip(f, fh.Size)
	if err != nil {
		s.logger.Debug("rejected upload", logging.String("filename", fh.Filename), logging.Err(err))
		return nil, echo.NewHTTPError(http.StatusBadRequest, "upload is not a readable zip archive")
	}
	defer bundle.Close()

	report, err := s.runner.Run(c.Request().Context(), bundle, opts)
	if errors.Is(err, takeout.ErrNothingToSummarize) {
		return nil, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

// options reads run options from the form, starting from configuration.
// Requests from the upload page send form=1, and then an unchecked box
// means off.
func (s *Server) options(c echo.Context) (pipeline.Options, error) {
	opts := pipeline.OptionsFromConfig(s.cfg)
	params, err := c.FormParams()
	if err != nil {
		return opts, fmt.Errorf("reading form: %w", err)
	}

	if include := params["include"]; len(include) > 0 {
		cats, err := activity.ParseCategories(include)
		if err != nil {
			return opts, err
		}
		opts.Categories = cats
		opts.Explicit = true
	}

	fromPage := params.Has("form")
	opts.Label = boolParam(params, "label", opts.Label && !fromPage)
	opts.Mood = boolParam(params, "mood", opts.Mood && !fromPage)

	if v := params.Get("recency_days"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days < 0 {
			return opts, fmt.Errorf("invalid recency_days %q", v)
		}
		opts.RecencyDays = days
	}
	if boolParam(params, "recent", false) {
		opts.RecencyDays = lastYearDays
	} else if fromPage {
		opts.RecencyDays = 0
	}
	return opts, nil
}

func boolParam(params url.Values, name string, fallback bool) bool {
	if !params.Has(name) {
		return fallback
	}
	switch strings.ToLower(params.Get(name)) {
	case "", "on", "1", "true", "yes":
		return true
	default:
		return false
	}
}
