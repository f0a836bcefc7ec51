package report

import (
	"fmt"
	"html/template"
	"io"
	"math"
	"strconv"

	"github.com/vgXhc/madison-accessibility/aggregate"
)

// Infeasible marks an after-scenario cell with no feasible trip. It is
// deliberately not "0": a missing pair means no trip exists, not a free one.
const Infeasible = "&ndash;"

// formatMinutes renders a duration as whole minutes.
func formatMinutes(v float64) string {
	return strconv.Itoa(int(math.Round(v)))
}

// formatPercent renders a change ratio to one decimal, or the infeasible
// marker when the ratio is undefined.
func formatPercent(r aggregate.Ratio) string {
	if !r.Defined {
		return Infeasible
	}
	return fmt.Sprintf("%.1f%%", r.Value*100)
}

type tableRow struct {
	From        string
	To          string
	TotalBefore string
	TotalAfter  string
	ChangeTotal string
	WalkBefore  string
	WalkAfter   string
	ChangeWalk  string
}

type tablePage struct {
	Title string
	Rows  []tableRow
}

// WriteTable renders the comparison rows as a self-contained HTML document
// with a client-sortable, filterable table.
func WriteTable(w io.Writer, title string, rows []aggregate.ComparisonRow) error {
	page := tablePage{Title: title, Rows: make([]tableRow, 0, len(rows))}
	for _, r := range rows {
		tr := tableRow{
			From:        r.Key.FromID,
			To:          r.Key.ToID,
			TotalBefore: formatMinutes(r.Before.MeanTotalTime),
			TotalAfter:  Infeasible,
			ChangeTotal: formatPercent(r.ChangeTotal),
			WalkBefore:  formatMinutes(r.Before.MeanWalkTime),
			WalkAfter:   Infeasible,
			ChangeWalk:  formatPercent(r.ChangeWalk),
		}
		if r.After != nil {
			tr.TotalAfter = formatMinutes(r.After.MeanTotalTime)
			tr.WalkAfter = formatMinutes(r.After.MeanWalkTime)
		}
		page.Rows = append(page.Rows, tr)
	}
	if err := tableTemplate.Execute(w, page); err != nil {
		return &RenderError{Artifact: "table", Err: err}
	}
	return nil
}

var tableTemplate = template.Must(template.New("table").Funcs(template.FuncMap{
	"raw": func(s string) template.HTML { return template.HTML(s) },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; }
input#filter { margin-bottom: 0.75rem; padding: 0.3rem; width: 18rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.35rem 0.6rem; text-align: right; }
th { cursor: pointer; background: #f0f0f0; }
td:first-child, td:nth-child(2) { text-align: left; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<input id="filter" type="text" placeholder="Filter by origin or destination">
<table id="cmp">
<thead>
<tr>
<th>From</th>
<th>To</th>
<th>Total time before (min)</th>
<th>Total time after (min)</th>
<th>Change total time (%)</th>
<th>Walk time before (min)</th>
<th>Walk time after (min)</th>
<th>Change walk time (%)</th>
</tr>
</thead>
<tbody>
{{range .Rows}}<tr>
<td>{{.From}}</td>
<td>{{.To}}</td>
<td>{{.TotalBefore}}</td>
<td>{{raw .TotalAfter}}</td>
<td>{{raw .ChangeTotal}}</td>
<td>{{.WalkBefore}}</td>
<td>{{raw .WalkAfter}}</td>
<td>{{raw .ChangeWalk}}</td>
</tr>
{{end}}</tbody>
</table>
<script>
(function () {
  var table = document.getElementById("cmp");
  var tbody = table.tBodies[0];
  var headers = table.tHead.rows[0].cells;

  function cellValue(row, i) {
    var text = row.cells[i].textContent.trim();
    var n = parseFloat(text.replace("%", ""));
    return isNaN(n) ? text : n;
  }

  for (var i = 0; i < headers.length; i++) {
    (function (col) {
      var asc = true;
      headers[col].addEventListener("click", function () {
        var rows = Array.prototype.slice.call(tbody.rows);
        rows.sort(function (a, b) {
          var va = cellValue(a, col), vb = cellValue(b, col);
          if (typeof va === "number" && typeof vb === "number") {
            return asc ? va - vb : vb - va;
          }
          return asc ? String(va).localeCompare(String(vb)) : String(vb).localeCompare(String(va));
        });
        rows.forEach(function (r) { tbody.appendChild(r); });
        asc = !asc;
      });
    })(i);
  }

  document.getElementById("filter").addEventListener("input", function () {
    var q = this.value.toLowerCase();
    Array.prototype.forEach.call(tbody.rows, function (row) {
      var from = row.cells[0].textContent.toLowerCase();
      var to = row.cells[1].textContent.toLowerCase();
      row.style.display = (from.indexOf(q) >= 0 || to.indexOf(q) >= 0) ? "" : "none";
    });
  });
})();
</script>
</body>
</html>
`))
