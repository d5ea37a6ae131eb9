package web

import (
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/rickgao/kalshi-signals/internal/dashboard"
	"github.com/rickgao/kalshi-signals/internal/history"
	"github.com/rickgao/kalshi-signals/internal/model"
	"github.com/rickgao/kalshi-signals/internal/portfolio"
	"github.com/rickgao/kalshi-signals/internal/render"
)

//go:embed templates/*.html
var templates embed.FS

type page struct {
	tmpl *template.Template
}

type pageData struct {
	Snap           *dashboard.Snapshot
	RefreshSeconds int
	House          *model.Signal
	Senate         *model.Signal
}

func newPage() *page {
	funcs := template.FuncMap{
		"percent":   render.Percent,
		"edge":      render.Edge,
		"points":    render.Points,
		"volume":    render.Volume,
		"ballot":    render.Ballot,
		"timestamp": render.Timestamp,
		"usd":       portfolio.USD,
		"signedUSD": portfolio.SignedUSD,
		"optUSD":    portfolio.OptionalSignedUSD,
		"last": func(s history.Series) string {
			if v, ok := s.Last(); ok {
				return render.Percent(v)
			}
			return render.NA
		},
		"tone": func(s model.Signal) string {
			switch render.Tone(s) {
			case 1:
				return "pos"
			case -1:
				return "neg"
			}
			return "flat"
		},
	}
	return &page{
		tmpl: template.Must(template.New("index.html").Funcs(funcs).ParseFS(templates, "templates/*.html")),
	}
}

func (p *page) render(w io.Writer, snap *dashboard.Snapshot, refresh time.Duration) error {
	data := pageData{
		Snap:           snap,
		RefreshSeconds: int(refresh.Seconds()),
	}
	if s, ok := snap.Signal(model.House); ok {
		data.House = &s
	}
	if s, ok := snap.Signal(model.Senate); ok {
		data.Senate = &s
	}
	return p.tmpl.ExecuteTemplate(w, "index.html", data)
}
