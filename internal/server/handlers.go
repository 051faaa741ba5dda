package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/san-kum/gravlens/internal/grid"
	"github.com/san-kum/gravlens/internal/render"
	"github.com/san-kum/gravlens/internal/sampler"
	"github.com/san-kum/gravlens/internal/source"
	"github.com/san-kum/gravlens/internal/theme"
)

// MaxStrength bounds the strength query parameter.
const MaxStrength = 5.0

// badgeCacheControl lets proxies keep a badge for an hour.
const badgeCacheControl = "public, max-age=3600"

type lensQuery struct {
	theme theme.Theme
	opts  sampler.Options
}

// parseQuery reads theme and strength on top of the server config.
func (s *Server) parseQuery(c *gin.Context) (lensQuery, error) {
	q := lensQuery{opts: s.cfg.SceneOptions()}

	name := c.DefaultQuery("theme", s.cfg.Theme)
	th, ok := theme.Lookup(name)
	if !ok {
		return q, fmt.Errorf("unknown theme %q", name)
	}
	q.theme = th

	if raw := c.Query("strength"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > MaxStrength {
			return q, fmt.Errorf("strength must be a number in [0,%g]", MaxStrength)
		}
		q.opts.Strength = v
	}
	return q, nil
}

func (s *Server) demoBadge(c *gin.Context) {
	seed := s.cfg.Seed
	if raw := c.Query("seed"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			badRequest(c, "seed must be an unsigned 32-bit integer")
			return
		}
		seed = uint32(v)
	}
	s.badge(c, source.Demo{Seed: seed}, "demo")
}

func (s *Server) userBadge(c *gin.Context) {
	s.badge(c, s.source, c.Param("user"))
}

func (s *Server) badge(c *gin.Context, src source.Source, user string) {
	q, err := s.parseQuery(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	days, err := src.Days(c.Request.Context(), user)
	if err != nil {
		sourceError(c, err)
		return
	}

	scene := sampler.NewScene(days, render.SceneOptions(q.opts, q.theme))
	opts := render.DefaultOptions()
	opts.Theme = q.theme
	opts.Workers = s.cfg.Workers

	svg := render.NewSVG(s.logger)
	var buf bytes.Buffer
	if err := svg.Render(c.Request.Context(), &buf, scene, opts); err != nil {
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, "render failed")
		return
	}

	c.Header("Cache-Control", badgeCacheControl)
	c.Data(http.StatusOK, svg.ContentType(), buf.Bytes())
}

// CellsResponse is the classified grid of a user.
type CellsResponse struct {
	User      string             `json:"user"`
	Days      int                `json:"days"`
	MaxCol    int                `json:"max_col"`
	MaxRow    int                `json:"max_row"`
	Anomalies int                `json:"anomalies"`
	Cells     []grid.AnomalyCell `json:"cells"`
}

func (s *Server) userCells(c *gin.Context) {
	user := c.Param("user")
	days, err := s.source.Days(c.Request.Context(), user)
	if err != nil {
		sourceError(c, err)
		return
	}

	opts := s.cfg.SceneOptions()
	cells := grid.DetectAnomalies(grid.NormalizeWithClip(days, opts.ClipPercent), opts.AnomalyPercent)
	maxCol, maxRow := grid.Bounds(cells)

	success(c, CellsResponse{
		User:      user,
		Days:      len(days),
		MaxCol:    maxCol,
		MaxRow:    maxRow,
		Anomalies: len(grid.Anomalies(cells)),
		Cells:     cells,
	})
}
