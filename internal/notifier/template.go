package notifier

import (
	"bytes"
	"html/template"
)

var emailTemplate = template.Must(template.New("low_stock").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: #667eea; color: white; padding: 20px; text-align: center;">
    <h1>📦 StockFlow Alert</h1>
  </div>
  <div style="padding: 20px; background: #f8f9fa;">
    <h2 style="color: #ef4444;">{{.Subject}}</h2>
    <p>{{.Message}}</p>
    <div style="background: white; padding: 15px; border-radius: 8px; margin: 15px 0;">
      <strong>Product Details:</strong><br>
      Name: {{.ProductName}}<br>
      SKU: {{.SKU}}<br>
      Current Stock: {{.StockQuantity}}<br>
      Minimum Stock: {{.MinStock}}
    </div>
    <p>Please restock this item to avoid stockouts.</p>
  </div>
  <div style="background: #333; color: white; padding: 10px; text-align: center; font-size: 12px;">
    StockFlow Inventory Management System
  </div>
</div>
`))

// RenderEmail renders the HTML body for an alert email.
func RenderEmail(alert Alert) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, alert); err != nil {
		return "", err
	}
	return buf.String(), nil
}
