package notifications

import (
	"bytes"
	"html/template"

	"github.com/Hopetizzy/Abisam-properties/internal/leads"
)

const leadNotificationTemplate = `<!DOCTYPE html>
<html>
<body>
  <h3>New inspection lead</h3>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Phone:</strong> {{.Phone}}</p>
  <p><strong>Property:</strong> {{.Property}}</p>
  <p><strong>Inspection day:</strong> {{.Date}}</p>
  <p><strong>Source:</strong> {{.Source}}</p>
  <p><strong>Session:</strong> {{.SessionID}}</p>
  <p><strong>Captured:</strong> {{.CreatedAt.Format "Mon, 02 Jan 2006 15:04 MST"}}</p>
</body>
</html>`

var leadNotificationTmpl = template.Must(template.New("lead_notification").Parse(leadNotificationTemplate))

func buildLeadNotificationHTML(lead leads.Lead) (string, error) {
	var buf bytes.Buffer
	if err := leadNotificationTmpl.Execute(&buf, lead); err != nil {
		return "", err
	}
	return buf.String(), nil
}
