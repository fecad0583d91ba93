package handler

import (
	"html/template"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
)

// PageData feeds the dashboard template
type PageData struct {
	Title       string
	Departments []string
	Weeks       int
}

// Page serves the dashboard shell. The widgets hydrate themselves from the
// JSON APIs and the SSE stream.
func (h *DashboardHandler) Page(w http.ResponseWriter, r *http.Request) {
	data := PageData{
		Title:       "Hospital Operations",
		Departments: h.svc.Departments(),
		Weeks:       52,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate().Execute(w, data); err != nil {
		log.Errorf("render page: %v", err)
	}
}

var (
	tmplPage     *template.Template
	tmplPageOnce sync.Once
)

func pageTemplate() *template.Template {
	tmplPageOnce.Do(func() {
		tmplPage = template.Must(template.New("page").Parse(pageHTML))
	})
	return tmplPage
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body{margin:0;font-family:system-ui,sans-serif;background:#f4f6f8;color:#2c3e50;display:flex}
#sidebar{width:240px;min-height:100vh;background:#2c3e50;color:#ecf0f1;padding:16px}
#sidebar h1{font-size:16px;margin:0 0 16px}
#sidebar label{display:block;font-size:13px;margin:6px 0}
#main-widget-area{flex:1;padding:16px;display:grid;grid-template-columns:2fr 1fr;gap:16px}
.widget{background:#fff;border-radius:6px;box-shadow:0 1px 3px rgba(0,0,0,.12);padding:12px;min-height:280px}
#weekly-trend{grid-column:1/-1}
.mini{min-height:140px}
</style>
</head>
<body>
<aside id="sidebar">
<h1>{{.Title}}</h1>
{{range .Departments}}<label><input type="checkbox" name="department" value="{{.}}" checked> {{.}}</label>
{{end}}
<label><input type="checkbox" id="hide-anomalies"> Hide anomaly weeks</label>
<label>Week <input type="range" id="week" min="1" max="{{.Weeks}}" value="1"></label>
</aside>
<main id="main-widget-area">
<div class="widget" id="weekly-trend"></div>
<div class="widget" id="staff-network-weekly"></div>
<div class="widget mini" id="mini-satisfaction"></div>
<div class="widget mini" id="mini-morale"></div>
</main>
<script>
new EventSource("/events").onmessage = function (e) {
  window.dispatchEvent(new CustomEvent("dashboard", {detail: JSON.parse(e.data)}));
};
</script>
</body>
</html>
`
