// internal/workers/notification/dispatch-fleet-alert/templates.go
package dispatchfleetalert

import (
	"bytes"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/xeipuuv/gojsonschema"

	"vessel-risk-workers/internal/common/errors"
)

// Alert bodies render from in-code templates. Each template has a schema the
// data map must satisfy before rendering; a schema miss means the caller
// built the data map wrong and the job must not retry.

var emailSubjectTmpl = texttemplate.Must(texttemplate.New("emailSubject").Parse(
	`[{{.priority}}] Fleet Risk Alert: {{.category}}`))

var emailHTMLTmpl = htmltemplate.Must(htmltemplate.New("emailHTML").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
<h2>{{.category}}</h2>
<p><strong>Priority:</strong> {{.priority}}</p>
<p><strong>Action:</strong> {{.action}}</p>
<p><strong>Expected impact:</strong> {{.impact}}</p>
<p><strong>Timeframe:</strong> {{.timeframe}}</p>
<hr>
<p>Fleet status: {{.totalVessels}} vessels, average risk score {{printf "%.1f" .averageRiskScore}}.
{{.highRiskVessels}} high risk, {{.criticalRiskVessels}} critical risk.</p>
<p style="color: #888888; font-size: 12px;">Alert {{.alertId}} | Report {{.reportId}} | {{.sentAt}}</p>
</body>
</html>
`))

var emailTextTmpl = texttemplate.Must(texttemplate.New("emailText").Parse(`FLEET RISK ALERT

Priority:  {{.priority}}
Category:  {{.category}}
Action:    {{.action}}
Impact:    {{.impact}}
Timeframe: {{.timeframe}}

Fleet status: {{.totalVessels}} vessels, average risk score {{printf "%.1f" .averageRiskScore}}
High risk: {{.highRiskVessels}}  Critical risk: {{.criticalRiskVessels}}

Alert {{.alertId}} | Report {{.reportId}} | {{.sentAt}}
`))

var smsTmpl = texttemplate.Must(texttemplate.New("sms").Parse(
	`[{{.priority}}] {{.category}}: {{.action}} ({{.criticalRiskVessels}} of {{.totalVessels}} vessels critical)`))

var emailTemplateSchema = map[string]interface{}{
	"type": "object",
	"required": []interface{}{
		"alertId", "reportId", "priority", "category", "action",
		"impact", "timeframe", "totalVessels", "averageRiskScore",
		"highRiskVessels", "criticalRiskVessels", "sentAt",
	},
	"properties": map[string]interface{}{
		"alertId":             map[string]interface{}{"type": "string", "minLength": 1},
		"reportId":            map[string]interface{}{"type": "string", "minLength": 1},
		"priority":            map[string]interface{}{"type": "string", "enum": []interface{}{"CRITICAL", "HIGH"}},
		"category":            map[string]interface{}{"type": "string", "minLength": 1},
		"action":              map[string]interface{}{"type": "string", "minLength": 1},
		"impact":              map[string]interface{}{"type": "string"},
		"timeframe":           map[string]interface{}{"type": "string"},
		"totalVessels":        map[string]interface{}{"type": "integer", "minimum": 0},
		"averageRiskScore":    map[string]interface{}{"type": "number", "minimum": 0, "maximum": 100},
		"highRiskVessels":     map[string]interface{}{"type": "integer", "minimum": 0},
		"criticalRiskVessels": map[string]interface{}{"type": "integer", "minimum": 0},
		"sentAt":              map[string]interface{}{"type": "string", "format": "date-time"},
	},
}

var smsTemplateSchema = map[string]interface{}{
	"type": "object",
	"required": []interface{}{
		"priority", "category", "action", "totalVessels", "criticalRiskVessels",
	},
	"properties": map[string]interface{}{
		"priority":            map[string]interface{}{"type": "string", "enum": []interface{}{"CRITICAL"}},
		"category":            map[string]interface{}{"type": "string", "minLength": 1},
		"action":              map[string]interface{}{"type": "string", "minLength": 1},
		"totalVessels":        map[string]interface{}{"type": "integer", "minimum": 0},
		"criticalRiskVessels": map[string]interface{}{"type": "integer", "minimum": 0},
	},
}

func validateTemplateData(schema, data map[string]interface{}) error {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(data))
	if err != nil {
		return errors.NewAlertTemplateInvalidError(err.Error())
	}

	if !result.Valid() {
		msgs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			msgs[i] = desc.String()
		}
		return errors.NewAlertTemplateInvalidError(strings.Join(msgs, "; "))
	}

	return nil
}

func renderEmail(data map[string]interface{}) (subject, htmlBody, textBody string, err error) {
	if err := validateTemplateData(emailTemplateSchema, data); err != nil {
		return "", "", "", err
	}

	var subjectBuf, htmlBuf, textBuf bytes.Buffer
	if err := emailSubjectTmpl.Execute(&subjectBuf, data); err != nil {
		return "", "", "", errors.NewAlertTemplateInvalidError(err.Error())
	}
	if err := emailHTMLTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", "", errors.NewAlertTemplateInvalidError(err.Error())
	}
	if err := emailTextTmpl.Execute(&textBuf, data); err != nil {
		return "", "", "", errors.NewAlertTemplateInvalidError(err.Error())
	}

	return subjectBuf.String(), htmlBuf.String(), textBuf.String(), nil
}

func renderSMS(data map[string]interface{}) (string, error) {
	if err := validateTemplateData(smsTemplateSchema, data); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := smsTmpl.Execute(&buf, data); err != nil {
		return "", errors.NewAlertTemplateInvalidError(err.Error())
	}

	return buf.String(), nil
}
