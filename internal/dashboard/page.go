package dashboard

import (
	"html/template"

	"launchdash/internal/display"
)

// pageData feeds the index template.
type pageData struct {
	Title       string
	Options     []display.SiteOption
	Selected    string
	Min, Max    float64
	Step        float64
	Low, High   float64
	Marks       []mark
	Proportion  template.HTML
	Correlation template.HTML
}

type mark struct {
	Value float64
	Label string
}

var pageTmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"num": func(f float64) string { return trimFloat(f) },
}).Parse(tmplPage))

const tmplPage = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<link rel="stylesheet" href="/static/style.css">
</head>
<body>
<h1 class="app-title">{{.Title}}</h1>

<section class="control">
  <h2>Launch Site</h2>
  <select id="launch-site" name="site">
    <option value=""{{if eq .Selected ""}} selected{{end}} disabled>Select Launch site</option>
    {{- range .Options}}
    <option value="{{.Value}}"{{if eq .Value $.Selected}} selected{{end}}>{{.Label}}</option>
    {{- end}}
  </select>
</section>

<section id="plot-render" class="plots" aria-live="polite">{{.Proportion}}</section>

<section class="control">
  <h2>Payload Range (kg)</h2>
  <div class="range" id="payload-slider" data-min="{{num .Min}}" data-max="{{num .Max}}" data-step="{{num .Step}}">
    <input type="range" id="payload-min" name="min" min="{{num .Min}}" max="{{num .Max}}" step="{{num .Step}}" value="{{num .Low}}" list="payload-marks" aria-label="Minimum payload">
    <input type="range" id="payload-max" name="max" min="{{num .Min}}" max="{{num .Max}}" step="{{num .Step}}" value="{{num .High}}" list="payload-marks" aria-label="Maximum payload">
    <datalist id="payload-marks">
      {{- range .Marks}}
      <option value="{{num .Value}}" label="{{.Label}}"></option>
      {{- end}}
    </datalist>
    <ol class="marks">
      {{- range .Marks}}
      <li>{{.Label}}</li>
      {{- end}}
    </ol>
    <output id="payload-readout" for="payload-min payload-max">{{num .Low}} kg – {{num .High}} kg</output>
  </div>
</section>

<section id="scatter-render" class="scatter" aria-live="polite">{{.Correlation}}</section>

<script src="/static/app.js" defer></script>
</body>
</html>
`
