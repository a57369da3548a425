// Package seed fills an empty directory with generated employees for
// demos and local development.
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/deppfellow/employee-directory/internal/model"
	"github.com/rs/zerolog"
)

// DefaultCount is the number of employees generated when none is given.
const DefaultCount = 50

// joiningWindowDays bounds how far back a generated date of joining goes.
const joiningWindowDays = 365 * 5

var (
	firstNames = []string{
		"Rahul", "Priya", "Amit", "Sneha", "Vikram", "Anjali", "Rohan", "Neha",
		"Arjun", "Pooja", "Karan", "Divya", "Sanjay", "Riya", "Aditya", "Kavya",
		"Rajesh", "Meera", "Suresh", "Ananya", "Nikhil", "Shreya", "Varun", "Ishita",
	}

	lastNames = []string{
		"Kumar", "Sharma", "Singh", "Patel", "Gupta", "Reddy", "Rao", "Verma",
		"Mehta", "Joshi", "Shah", "Desai", "Nair", "Iyer", "Agarwal", "Chopra",
	}

	departments = []string{
		"Engineering", "Product", "Design", "Marketing", "Sales", "HR",
		"Finance", "Operations", "Customer Success", "Data Science",
	}

	designations = map[string][]string{
		"Engineering":      {"Software Engineer", "Senior Software Engineer", "Tech Lead", "Engineering Manager", "DevOps Engineer"},
		"Product":          {"Product Manager", "Senior Product Manager", "Product Owner", "Associate Product Manager"},
		"Design":           {"UI/UX Designer", "Senior Designer", "Design Lead", "Product Designer"},
		"Marketing":        {"Marketing Manager", "Content Writer", "SEO Specialist", "Marketing Executive"},
		"Sales":            {"Sales Executive", "Account Manager", "Sales Manager", "Business Development Manager"},
		"HR":               {"HR Manager", "HR Executive", "Recruiter", "HR Business Partner"},
		"Finance":          {"Accountant", "Finance Manager", "Financial Analyst", "CFO"},
		"Operations":       {"Operations Manager", "Operations Executive", "Operations Lead"},
		"Customer Success": {"Customer Success Manager", "Support Engineer", "Customer Success Executive"},
		"Data Science":     {"Data Scientist", "Data Analyst", "ML Engineer", "Data Engineer"},
	}
)

// Store is what the seeder needs from the employee repository.
type Store interface {
	Count(ctx context.Context) (int, error)
	CreateMany(ctx context.Context, fields []model.EmployeeFields) (int64, error)
}

// DefaultDomain is the email domain of generated employees.
const DefaultDomain = "company.com"

// Generator produces random employees with unique emails.
type Generator struct {
	rnd    *rand.Rand
	today  time.Time
	domain string
	used   map[string]struct{}
}

// NewGenerator returns a Generator whose output is fully determined by seed.
func NewGenerator(seed uint64, today time.Time) *Generator {
	return &Generator{
		rnd:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		today:  today,
		domain: DefaultDomain,
		used:   make(map[string]struct{}),
	}
}

func (g *Generator) pick(values []string) string {
	return values[g.rnd.IntN(len(values))]
}

// email returns first.last@domain, numbering repeats.
func (g *Generator) email(first, last string) string {
	base := strings.ToLower(first + "." + last)
	email := base + "@" + g.domain
	for n := 1; ; n++ {
		if _, taken := g.used[email]; !taken {
			break
		}
		email = fmt.Sprintf("%s%d@%s", base, n, g.domain)
	}
	g.used[email] = struct{}{}
	return email
}

// Next returns one generated employee.
func (g *Generator) Next() model.EmployeeFields {
	first, last := g.pick(firstNames), g.pick(lastNames)
	department := g.pick(departments)
	joined := g.today.AddDate(0, 0, -g.rnd.IntN(joiningWindowDays+1))

	return model.EmployeeFields{
		Name:          first + " " + last,
		Email:         g.email(first, last),
		Department:    department,
		Designation:   g.pick(designations[department]),
		DateOfJoining: model.NewDate(joined.Year(), joined.Month(), joined.Day()),
	}
}

// Generate returns n employees.
func (g *Generator) Generate(n int) []model.EmployeeFields {
	out := make([]model.EmployeeFields, 0, n)
	for range n {
		out = append(out, g.Next())
	}
	return out
}

// Seeder writes generated employees to a Store.
type Seeder struct {
	store     Store
	generator *Generator
	logger    *zerolog.Logger
}

func NewSeeder(store Store, generator *Generator, logger *zerolog.Logger) *Seeder {
	return &Seeder{store: store, generator: generator, logger: logger}
}

// Seed inserts count employees. A non-empty directory is left alone
// unless force is set. It returns the number of employees inserted.
func (s *Seeder) Seed(ctx context.Context, count int, force bool) (int64, error) {
	if count < 1 {
		return 0, fmt.Errorf("count must be positive, got %d", count)
	}

	existing, err := s.store.Count(ctx)
	if err != nil {
		return 0, err
	}
	if existing > 0 && !force {
		s.logger.Info().
			Int("existing", existing).
			Msg("directory already has employees, skipping seed")
		return 0, nil
	}

	// Earlier runs used other domains, so a forced run cannot collide with them.
	if existing > 0 {
		s.generator.domain = fmt.Sprintf("batch%d.%s", existing, DefaultDomain)
	}

	s.logger.Info().Int("count", count).Msg("generating employees")

	inserted, err := s.store.CreateMany(ctx, s.generator.Generate(count))
	if err != nil {
		return 0, fmt.Errorf("seed employees: %w", err)
	}

	s.logger.Info().
		Int64("inserted", inserted).
		Int("total", existing+int(inserted)).
		Msg("seeded employees")

	return inserted, nil
}
