package domain

// Category is a ticket queue. Agents are assigned to categories and tickets
// are filed under exactly one.
type Category struct {
	ID   int64
	Name string
}

// Status is an admin-managed ticket state row. See StatusOpen/StatusClosed
// for the two ids with reserved meaning.
type Status struct {
	ID   int64
	Name string
}

// Priority is an admin-managed urgency row.
type Priority struct {
	ID   int64
	Name string
}

// Organization groups requesters.
type Organization struct {
	ID        int64
	Name      string
	Address   *string
	Phone     *string
	ManagerID *int64
}

// HelpTopicType distinguishes incident topics from request topics.
type HelpTopicType string

const (
	HelpTopicIncident HelpTopicType = "incident"
	HelpTopicRequest  HelpTopicType = "request"
)

// HelpTopic classifies inbound requests on the intake form.
type HelpTopic struct {
	ID    int64
	Topic string
	Type  HelpTopicType
}

// CannedResponse is a reusable reply snippet, optionally tied to a category.
type CannedResponse struct {
	ID         int64
	Name       string
	CategoryID *int64
	Response   string
}

// CustomField is an extra intake-form input attached to a category, a help
// topic, or both. At least one association is required.
type CustomField struct {
	ID          int64
	FieldLabel  string
	FieldType   string
	CategoryID  *int64
	HelpTopicID *int64
}

// ReportCategory is a node in the reporting tree. Required is only
// meaningful on child nodes; root nodes always carry false.
type ReportCategory struct {
	ID       int64
	Name     string
	ParentID *int64
	Required bool
}
