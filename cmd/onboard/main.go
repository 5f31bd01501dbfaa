// Command onboard runs the Craftly Living sign-up flows in the terminal
// against a running API server.
//
//	onboard               walk a homeowner through the five onboarding steps,
//	                      submit the project and print its matched contractors
//	onboard builder       sign a builder up and print the created profile
//	onboard builder <id>  print an existing builder profile
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/craftly-living/backend/client"
	"github.com/craftly-living/backend/config"
	"github.com/craftly-living/backend/errs"
	"github.com/craftly-living/backend/onboarding"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	fmt.Println("🏠 Craftly Living Onboarding")
	fmt.Println("----------------------------")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, continuing with environment variables...")
	}
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	env := config.New()
	apiURL := config.GetString(env, "CRAFTLY_API_URL", "http://localhost:8080")
	userID := int64(config.GetInt(env, "CRAFTLY_USER_ID", 1))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := client.New(apiURL, nil)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	if err := c.Health(ctx); err != nil {
		fmt.Printf("❌ API at %s is not reachable: %v\n", apiURL, err)
		os.Exit(1)
	}

	p := prompter{in: bufio.NewReader(os.Stdin), out: os.Stdout}
	args := os.Args[1:]
	switch {
	case len(args) == 0:
		err = homeowner(ctx, p, c, userID)
	case args[0] == "builder":
		err = builder(ctx, p, c, args[1:])
	default:
		err = fmt.Errorf("unknown command %q, expected no arguments or \"builder [id]\"", args[0])
	}
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
}

func homeowner(ctx context.Context, p prompter, c *client.Client, userID int64) error {
	wizard := onboarding.NewWizard(c, &userID)
	if err := run(ctx, p, wizard); err != nil {
		return err
	}

	views, err := c.Dashboard(ctx, userID)
	if err != nil {
		return fmt.Errorf("could not load your dashboard: %w", err)
	}
	if len(views) == 0 {
		return nil
	}
	latest := views[len(views)-1]
	fmt.Fprintf(p.out, "\n%s · %s\n", latest.Status, latest.BudgetLabel)
	for _, m := range latest.Matches {
		fmt.Fprintf(p.out, "  ⭐ %.1f  %s (%s), %s, %s\n", m.Rating, m.Name, m.Location, m.Phone, m.ResponseTime)
	}
	return nil
}

type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// ask prints question and returns the trimmed answer line.
func (p prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// choose lists options numbered from 1 and returns the chosen index, or -1
// for a blank answer. "b" goes back.
func (p prompter) choose(title string, labels []string) (int, bool, error) {
	fmt.Fprintf(p.out, "\n%s\n", title)
	for i, label := range labels {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, label)
	}
	for {
		answer, err := p.ask("Choose a number (b = back): ")
		if err != nil {
			return 0, false, err
		}
		if answer == "b" {
			return 0, true, nil
		}
		if answer == "" {
			return -1, false, nil
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(labels) {
			return n - 1, false, nil
		}
		fmt.Fprintln(p.out, "Please enter one of the listed numbers.")
	}
}

func run(ctx context.Context, p prompter, w *onboarding.Wizard) error {
	for {
		step := w.Step()
		fmt.Fprintf(p.out, "\nStep %d of %d (%d%%)\n", step, onboarding.TotalSteps, w.Progress())

		back, err := askStep(p, w, step)
		if err != nil {
			return err
		}
		if back {
			w.Previous()
			continue
		}

		if step < onboarding.StepTimeline {
			if err := w.Next(); err != nil {
				printStepError(p.out, err)
			}
			continue
		}

		fmt.Fprintln(p.out, "\n⏳ Submitting your project...")
		project, err := w.Submit(ctx)
		if errs.IsValidation(err) || client.IsStatus(err, http.StatusBadRequest) {
			printStepError(p.out, err)
			continue
		}
		if err != nil {
			return fmt.Errorf("submit project: %w", err)
		}
		fmt.Fprintf(p.out, "✅ Project #%d created: %s renovation in %s\n", project.ID, project.RenovationType, project.Postcode)
		return nil
	}
}

func askStep(p prompter, w *onboarding.Wizard, step onboarding.Step) (bool, error) {
	switch step {
	case onboarding.StepRenovationType:
		return chooseValue(p, w, "What are you renovating?", onboarding.RenovationTypes(), func(a *onboarding.Answers, v string) { a.RenovationType = v })
	case onboarding.StepPostcode:
		answer, err := p.ask("Where is the property? Postcode (b = back): ")
		if err != nil || answer == "b" {
			return answer == "b", err
		}
		w.Update(func(a *onboarding.Answers) { a.Postcode = answer })
	case onboarding.StepBudget:
		ranges := onboarding.BudgetRanges()
		labels := make([]string, len(ranges))
		for i, r := range ranges {
			labels[i] = r.Label
		}
		i, back, err := p.choose("What's your budget? (blank to skip)", labels)
		if err != nil || back {
			return back, err
		}
		w.Update(func(a *onboarding.Answers) {
			a.Budget = ""
			if i >= 0 {
				a.Budget = ranges[i].Value
			}
		})
	case onboarding.StepStyle:
		return chooseValue(p, w, "Which style do you like?", onboarding.Styles(), func(a *onboarding.Answers, v string) { a.Style = v })
	case onboarding.StepTimeline:
		back, err := chooseValue(p, w, "When do you want to start?", onboarding.Timelines(), func(a *onboarding.Answers, v string) { a.Timeline = v })
		if err != nil || back {
			return back, err
		}
		notes, err := p.ask("Anything else we should know? (optional): ")
		if err != nil {
			return false, err
		}
		w.Update(func(a *onboarding.Answers) { a.AdditionalNotes = notes })
	}
	return false, nil
}

func chooseValue(p prompter, w *onboarding.Wizard, title string, choices []onboarding.Choice, set func(*onboarding.Answers, string)) (bool, error) {
	labels := make([]string, len(choices))
	for i, c := range choices {
		labels[i] = c.Label
		if c.Description != "" {
			labels[i] += " - " + c.Description
		}
	}
	i, back, err := p.choose(title, labels)
	if err != nil || back {
		return back, err
	}
	value := ""
	if i >= 0 {
		value = choices[i].Value
	}
	w.Update(func(a *onboarding.Answers) { set(a, value) })
	return false, nil
}

func printStepError(out io.Writer, err error) {
	for _, f := range errs.ValidationFields(err) {
		fmt.Fprintf(out, "⚠️  %s\n", f.Message)
	}
	var apiErr *client.Error
	if errors.As(err, &apiErr) {
		fmt.Fprintf(out, "⚠️  %s\n", apiErr.Message)
	}
}
