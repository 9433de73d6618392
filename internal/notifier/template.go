package notifier

import (
	"bytes"
	"fmt"
	"html/template"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Danielagboola52/audiophile-ecommerce/internal/order"
)

var printer = message.NewPrinter(language.English)

// formatAmount renders a currency amount with thousands separators and
// no forced decimal places: whole amounts display integer-like.
func formatAmount(v float64) string {
	if v == math.Trunc(v) {
		return printer.Sprintf("%d", int64(v))
	}
	return printer.Sprintf("%.2f", v)
}

var confirmationTmpl = template.Must(template.New("confirmation").Funcs(template.FuncMap{
	"money": formatAmount,
	"lineTotal": func(item order.LineItem) string {
		return formatAmount(item.Price * float64(item.Quantity))
	},
}).Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Order Confirmation</title>
  </head>
  <body style="font-family: 'Arial', sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background-color: #D87D4A; padding: 30px; text-align: center; border-radius: 8px 8px 0 0;">
      <h1 style="color: white; margin: 0; font-size: 28px;">audiophile</h1>
    </div>

    <div style="background-color: #ffffff; padding: 40px; border: 1px solid #e0e0e0; border-top: none; border-radius: 0 0 8px 8px;">
      <div style="background-color: #f9f9f9; padding: 20px; border-radius: 8px; margin-bottom: 30px;">
        <h2 style="color: #D87D4A; margin: 0 0 10px 0;">&#10003; Order Confirmed</h2>
        <p style="margin: 0; font-size: 16px;">Thank you for your order, {{.Name}}!</p>
      </div>

      <div style="margin-bottom: 30px;">
        <h3 style="color: #333; margin-bottom: 15px;">Order Details</h3>
        <p style="margin: 5px 0;"><strong>Order ID:</strong> {{.OrderID}}</p>
        <p style="margin: 5px 0;"><strong>Email:</strong> {{.To}}</p>
      </div>

      <div style="margin-bottom: 30px;">
        <h3 style="color: #333; margin-bottom: 15px;">Order Summary</h3>
        <table style="width: 100%; border-collapse: collapse;">
          <thead>
            <tr style="background-color: #f1f1f1;">
              <th style="padding: 12px; text-align: left; border-bottom: 2px solid #ddd;">Item</th>
              <th style="padding: 12px; text-align: left; border-bottom: 2px solid #ddd;">Price</th>
              <th style="padding: 12px; text-align: left; border-bottom: 2px solid #ddd;">Qty</th>
              <th style="padding: 12px; text-align: right; border-bottom: 2px solid #ddd;">Total</th>
            </tr>
          </thead>
          <tbody>
            {{- range .Items}}
            <tr>
              <td style="padding: 12px; border-bottom: 1px solid #f1f1f1;"><strong>{{if .ShortName}}{{.ShortName}}{{else}}{{.Name}}{{end}}</strong></td>
              <td style="padding: 12px; border-bottom: 1px solid #f1f1f1;">${{money .Price}}</td>
              <td style="padding: 12px; border-bottom: 1px solid #f1f1f1;">x{{.Quantity}}</td>
              <td style="padding: 12px; border-bottom: 1px solid #f1f1f1; text-align: right;"><strong>${{lineTotal .}}</strong></td>
            </tr>
            {{- end}}
          </tbody>
          <tfoot>
            <tr>
              <td colspan="3" style="padding: 20px 12px 12px; text-align: right; font-size: 18px;"><strong>Grand Total:</strong></td>
              <td style="padding: 20px 12px 12px; text-align: right; font-size: 18px; color: #D87D4A;"><strong>${{money .GrandTotal}}</strong></td>
            </tr>
          </tfoot>
        </table>
      </div>

      <div style="background-color: #f9f9f9; padding: 20px; border-radius: 8px; margin-top: 30px;">
        <p style="margin: 0 0 15px 0;"><strong>What happens next?</strong></p>
        <p style="margin: 5px 0;">&#10003; We're processing your order</p>
        <p style="margin: 5px 0;">&#10003; You'll receive a shipping confirmation soon</p>
        <p style="margin: 5px 0;">&#10003; Estimated delivery: 3-5 business days</p>
      </div>

      <div style="text-align: center; margin-top: 30px; padding-top: 30px; border-top: 1px solid #e0e0e0;">
        <a href="{{.BaseURL}}"
           style="display: inline-block; background-color: #D87D4A; color: white; padding: 12px 30px; text-decoration: none; border-radius: 4px; font-weight: bold;">
          View Your Order
        </a>
      </div>

      <div style="margin-top: 30px; padding-top: 30px; border-top: 1px solid #e0e0e0; text-align: center; color: #666; font-size: 14px;">
        <p>Need help? Contact us at <a href="mailto:support@audiophile.com" style="color: #D87D4A;">support@audiophile.com</a></p>
        <p style="margin-top: 20px;">&copy; 2024 Audiophile. All rights reserved.</p>
      </div>
    </div>
  </body>
</html>
`))

type confirmationData struct {
	Confirmation
	BaseURL string
}

// RenderConfirmation builds the confirmation email body.
func RenderConfirmation(c Confirmation, baseURL string) (string, error) {
	var buf bytes.Buffer
	err := confirmationTmpl.Execute(&buf, confirmationData{Confirmation: c, BaseURL: baseURL})
	if err != nil {
		return "", fmt.Errorf("failed to render confirmation email: %w", err)
	}
	return buf.String(), nil
}
