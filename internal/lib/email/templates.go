package email

// Template names an HTML file under templates/.
type Template string

const (
	TemplateWelcome Template = "welcome"
)

// WelcomeData is rendered into the welcome template.
type WelcomeData struct {
	Name          string
	Department    string
	Designation   string
	DateOfJoining string
}

// SendWelcomeEmail greets a newly added employee.
func (c *Client) SendWelcomeEmail(to string, data WelcomeData) error {
	return c.SendEmail(to, "Welcome to the team, "+data.Name+"!", TemplateWelcome, data)
}
