package document

import (
	"bytes"
	"fmt"
	"html/template"
)

var quoteTemplate = template.Must(template.New("quote").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>Presupuesto {{.ShortID}}</title>
<style>
  body { font-family: Georgia, serif; color: #3a2d28; margin: 48px; }
  header { display: flex; align-items: center; gap: 16px; border-bottom: 2px solid #b08d7a; padding-bottom: 16px; }
  header img { height: 64px; }
  .brandmark { font-size: 40px; }
  h1 { font-size: 22px; margin: 0; }
  .meta { color: #8a7468; font-size: 13px; }
  .client { margin: 24px 0 8px; font-size: 15px; }
  table { width: 100%; border-collapse: collapse; margin-top: 12px; }
  th { text-align: left; font-size: 12px; text-transform: uppercase; letter-spacing: 0.05em; color: #8a7468; border-bottom: 1px solid #d8c7bc; padding: 6px 4px; }
  td { padding: 8px 4px; border-bottom: 1px solid #efe6e0; font-size: 14px; }
  td.num, th.num { text-align: right; }
  .totals { margin-top: 20px; margin-left: auto; width: 55%; }
  .totals td { border: none; padding: 4px; }
  .grand td { font-size: 19px; font-weight: bold; border-top: 2px solid #b08d7a; padding-top: 10px; }
  footer { margin-top: 48px; text-align: center; color: #8a7468; font-size: 13px; }
</style>
</head>
<body>
<header>
  {{if .LogoDataURL}}<img src="{{.LogoDataURL}}" alt="{{.BrandName}}">{{else}}<span class="brandmark">&#10047;</span>{{end}}
  <div>
    <h1>{{.BrandName}}</h1>
    <div class="meta">Presupuesto N&ordm; {{.ShortID}} &middot; {{.Date}}</div>
  </div>
</header>

<p class="client">Cliente: <strong>{{.ClientName}}</strong></p>

<table>
  <thead>
    <tr><th>Descripci&oacute;n</th><th class="num">Cantidad</th><th class="num">Precio unit.</th><th class="num">Subtotal</th></tr>
  </thead>
  <tbody>
    {{range .Lines}}<tr><td>{{.Description}}</td><td class="num">{{.Quantity}}</td><td class="num">{{.UnitPrice}}</td><td class="num">{{.Subtotal}}</td></tr>
    {{end}}
  </tbody>
</table>

<table class="totals">
  <tr><td>Subtotal</td><td class="num">{{.Subtotal}}</td></tr>
  {{if .HasDiscount}}<tr><td>{{.DiscountLabel}}</td><td class="num">&minus;{{.Discount}}</td></tr>{{end}}
  <tr class="grand"><td>Total</td><td class="num">{{.Total}}</td></tr>
</table>

<footer>
  <p>Gracias por elegirnos &#10047;</p>
  {{if .ContactNumber}}<p>{{.BrandName}} &middot; {{.ContactNumber}}</p>{{end}}
</footer>
</body>
</html>
`))

// Render produces the complete HTML document for preview and export.
func Render(data Data) (string, error) {
	var buf bytes.Buffer
	if err := quoteTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("document: render: %w", err)
	}
	return buf.String(), nil
}
