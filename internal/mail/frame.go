package mail

import (
	"bytes"
	"html/template"
)

// baseFrame — базовая HTML-рамка всех писем платформы.
// Отрендеренное тело письма подставляется в {{.Body}}.
const baseFrame = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#f4f4f5;font-family:Arial,Helvetica,sans-serif;">
  <table role="presentation" width="100%" cellpadding="0" cellspacing="0">
    <tr>
      <td align="center" style="padding:24px 12px;">
        <table role="presentation" width="600" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;">
          <tr>
            <td style="padding:24px 32px;color:#18181b;font-size:15px;line-height:1.6;">
              {{.Body}}
            </td>
          </tr>
          <tr>
            <td style="padding:16px 32px;color:#71717a;font-size:12px;border-top:1px solid #e4e4e7;">
              You are receiving this email because you subscribed to a newsletter on our platform.
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`

var frameTmpl = template.Must(template.New("base").Parse(baseFrame))

// wrapInFrame оборачивает готовое HTML-тело письма в базовую рамку.
func wrapInFrame(body string) (string, error) {
	var buf bytes.Buffer

	err := frameTmpl.Execute(&buf, struct {
		Body template.HTML
	}{
		// Тело уже отрендерено нашим Renderer'ом из фиксированных
		// шаблонов, не из пользовательского ввода.
		Body: template.HTML(body),
	})
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}
