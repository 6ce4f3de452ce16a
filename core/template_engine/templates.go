package template_engine

import "embed"

//go:embed templates
var TemplateFS embed.FS

type eventTemplates struct {
	Ref           TemplateRef
	EVENT_TEST_TS TemplateRef
}

type supportTemplates struct {
	Ref TemplateRef
}

var TEMPLATES = struct {
	EVENTS  eventTemplates
	SUPPORT supportTemplates
}{
	EVENTS: eventTemplates{
		Ref:           TemplateRef{Path: "events", IsDir: true},
		EVENT_TEST_TS: TemplateRef{Path: "events/event_test.ts.tmpl"},
	},
	SUPPORT: supportTemplates{
		Ref: TemplateRef{Path: "support", IsDir: true},
	},
}

// EventTestData is everything the event test stub template reads.
type EventTestData struct {
	ImportPrefix string
	LogicalName  string
}
