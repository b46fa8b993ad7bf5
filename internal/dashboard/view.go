package dashboard

import (
	"html/template"
	"io"

	"github.com/futscout/futscout/internal/render"
)

// pageFuncs exposes the styling math to the template. Values coming out
// of the heatmap matrices are shares in [0, 1], so FormatPercent applies
// directly to the raw cell value.
var pageFuncs = template.FuncMap{
	"cellCSS": func(value, maxHeat float64, accent render.Accent) template.CSS {
		return template.CSS(render.Cell(value, maxHeat, accent).CSS())
	},
	"zoneCSS": func(value float64, accent render.Accent) template.CSS {
		return template.CSS(render.HeatZone(value, accent).CSS())
	},
	"pct": render.FormatPercent,
	"chartSVG": func(chart *render.RadarChart) template.HTML {
		if chart == nil {
			return ""
		}
		// Chart markup is generated locally from escaped inputs
		return template.HTML(chart.SVG)
	},
	"accentBlue": func() render.Accent { return render.AccentBlue },
	"accentRed":  func() render.Accent { return render.AccentRed },
	"col": func(matrix [][]float64, col int) []float64 {
		out := make([]float64, 0, len(matrix))
		for _, row := range matrix {
			if col < len(row) {
				out = append(out, row[col])
			}
		}
		return out
	},
}

var pageTmpl = template.Must(template.New("page").Funcs(pageFuncs).Parse(pageHTML))

func renderPage(w io.Writer, snap Snapshot) error {
	return pageTmpl.Execute(w, snap)
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Futscout</title>
<style>
  body { margin: 0; background: #14141c; color: #e8e8f0; font-family: system-ui, sans-serif; }
  header { padding: 16px 24px; border-bottom: 1px solid #2b2b38; }
  header h1 { margin: 0; font-size: 20px; letter-spacing: 1px; }
  main { padding: 24px; max-width: 1100px; margin: 0 auto; }
  form.filters { display: flex; gap: 12px; flex-wrap: wrap; align-items: flex-end; margin-bottom: 20px; }
  form.filters label { display: flex; flex-direction: column; gap: 4px; font-size: 12px; color: #9a9ab0; }
  form.filters select, form.filters input { background: #1d1d28; color: #e8e8f0; border: 1px solid #2b2b38; border-radius: 6px; padding: 6px 8px; min-width: 140px; }
  form.filters button { background: #3b82f6; color: #fff; border: 0; border-radius: 6px; padding: 8px 16px; cursor: pointer; }
  .banner { background: #3a1d22; border: 1px solid #ef4444; border-radius: 8px; padding: 10px 14px; margin-bottom: 16px; }
  .loading { color: #9a9ab0; margin-bottom: 16px; }
  .compare { display: grid; grid-template-columns: 1fr auto 1fr; gap: 24px; align-items: start; }
  .card { background: #1d1d28; border: 1px solid #2b2b38; border-radius: 10px; padding: 16px; }
  .card h2 { margin: 0 0 2px; font-size: 16px; }
  .card .meta { color: #9a9ab0; font-size: 12px; margin-bottom: 12px; }
  .card .overall { font-size: 28px; font-weight: 700; margin-bottom: 12px; }
  .blue h2, .blue .overall { color: #3b82f6; }
  .red h2, .red .overall { color: #ef4444; }
  .pitch { display: flex; flex-direction: column-reverse; gap: 4px; margin-bottom: 16px; }
  .zone { height: 56px; border-radius: 6px; display: flex; align-items: center; justify-content: space-between; padding: 0 10px; font-size: 12px; }
  .grid { width: 100%; border-collapse: separate; border-spacing: 4px; font-size: 12px; }
  .grid th { color: #9a9ab0; font-weight: 400; text-align: left; }
  .grid td { border-radius: 4px; padding: 8px; text-align: center; }
</style>
</head>
<body>
<header><h1>FUTSCOUT</h1></header>
<main>
  <form class="filters" method="get" action="/compare">
    <label>League
      <select name="league">
        {{range .Leagues}}<option value="{{.}}"{{if eq . $.Filters.League}} selected{{end}}>{{.}}</option>{{end}}
      </select>
    </label>
    <label>Position
      <select name="pos">
        <option value="ALL"{{if eq $.Filters.Pos "ALL"}} selected{{end}}>ALL</option>
        {{range .Positions}}<option value="{{.}}"{{if eq . $.Filters.Pos}} selected{{end}}>{{.}}</option>{{end}}
      </select>
    </label>
    <label>Min 90s
      <input type="number" name="min90s" min="0" step="0.5" value="{{.Filters.Min90s}}">
    </label>
    <label>Player A
      <select name="player_a">
        {{range .Players}}<option value="{{.Player}}"{{if eq .Player $.PlayerA}} selected{{end}}>{{.Player}} ({{.Squad}})</option>{{end}}
      </select>
    </label>
    <label>Player B
      <select name="player_b">
        {{range .Players}}<option value="{{.Player}}"{{if eq .Player $.PlayerB}} selected{{end}}>{{.Player}} ({{.Squad}})</option>{{end}}
      </select>
    </label>
    <button type="submit">Compare</button>
  </form>

  {{if .ErrMsg}}<div class="banner">{{.ErrMsg}}</div>{{end}}
  {{if .Loading}}<div class="loading">Loading comparison…</div>{{end}}

  {{if .Result}}
  {{$max := .MaxHeat}}
  <div class="compare">
    <div class="card blue">
      <h2>{{.Result.PlayerA.Name}}</h2>
      <div class="meta">{{.Result.PlayerA.Squad}} · {{.Result.PlayerA.Pos}}</div>
      <div class="overall">{{.Result.PlayerA.Radar.Overall}}</div>
      <div class="pitch">
        {{$hm := .Result.PlayerA.Heatmap}}
        {{range $i, $v := col $hm.Matrix 0}}
        <div class="zone" style="{{zoneCSS $v accentBlue}}">
          <span>{{index $hm.YLabels $i}}</span><span>{{pct $v}}</span>
        </div>
        {{end}}
      </div>
      <table class="grid">
        <tr><th></th>{{range $hm.XLabels}}<th>{{.}}</th>{{end}}</tr>
        {{range $i, $row := $hm.Matrix}}
        <tr>
          <th>{{index $hm.YLabels $i}}</th>
          {{range $row}}<td style="{{cellCSS . $max accentBlue}}">{{pct .}}</td>{{end}}
        </tr>
        {{end}}
      </table>
    </div>

    <div class="card">{{chartSVG .Chart}}</div>

    <div class="card red">
      <h2>{{.Result.PlayerB.Name}}</h2>
      <div class="meta">{{.Result.PlayerB.Squad}} · {{.Result.PlayerB.Pos}}</div>
      <div class="overall">{{.Result.PlayerB.Radar.Overall}}</div>
      <div class="pitch">
        {{$hm := .Result.PlayerB.Heatmap}}
        {{range $i, $v := col $hm.Matrix 0}}
        <div class="zone" style="{{zoneCSS $v accentRed}}">
          <span>{{index $hm.YLabels $i}}</span><span>{{pct $v}}</span>
        </div>
        {{end}}
      </div>
      <table class="grid">
        <tr><th></th>{{range $hm.XLabels}}<th>{{.}}</th>{{end}}</tr>
        {{range $i, $row := $hm.Matrix}}
        <tr>
          <th>{{index $hm.YLabels $i}}</th>
          {{range $row}}<td style="{{cellCSS . $max accentRed}}">{{pct .}}</td>{{end}}
        </tr>
        {{end}}
      </table>
    </div>
  </div>
  {{end}}
</main>
</body>
</html>
`
