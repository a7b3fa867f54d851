package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fittrackapp/fittrack/internal/auth"
	"github.com/fittrackapp/fittrack/internal/goals"
	"github.com/fittrackapp/fittrack/internal/stats"
	"github.com/fittrackapp/fittrack/internal/users"
	"github.com/fittrackapp/fittrack/internal/workouts"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	log "github.com/sirupsen/logrus"
)

const dateInputLayout = "2006-01-02"

var errNotLoggedIn = errors.New("not logged in, run: fittrack login")

type app struct {
	auth     *auth.Store
	workouts *workouts.Store
	goals    *goals.Store
	users    *users.Service
	registry *prometheus.Registry
	out      io.Writer
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.logout()
	case "profile":
		return a.profile(ctx, args)
	case "workouts":
		return a.workoutsCmd(ctx, args)
	case "goals":
		return a.goalsCmd(ctx, args)
	case "dashboard":
		return a.dashboard(ctx)
	case "stats":
		return a.stats(ctx)
	case "feed":
		return a.feed(ctx)
	case "follow":
		return a.follow(ctx, args, true)
	case "unfollow":
		return a.follow(ctx, args, false)
	case "metrics":
		return a.metrics()
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// requireAuth resumes the stored session; commands that talk to protected
// endpoints call it first. A restore failure just means logged out.
func (a *app) requireAuth(ctx context.Context) error {
	result, err := a.auth.Restore(ctx)
	if err != nil {
		log.Debugf("session restore [%s]: %s", result, err)
	}
	if result != auth.RestoreOK {
		return errNotLoggedIn
	}
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (at least 6 characters)")
	confirm := fs.String("confirm", "", "password confirmation")
	age := fs.Int("age", 0, "age in years (optional)")
	weight := fs.Float64("weight", 0, "weight in kilos (optional)")
	height := fs.Float64("height", 0, "height in centimeters (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.auth.Register(ctx, auth.RegisterParams{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Age:      *age,
		Weight:   *weight,
		Height:   *height,
	}, *confirm)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "welcome, %s - you are registered and logged in\n", user.Name)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) logout() error {
	if err := a.auth.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "logged out")
	return nil
}

func (a *app) profile(ctx context.Context, args []string) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	if len(args) > 0 && args[0] == "update" {
		return a.profileUpdate(ctx, args[1:])
	}

	user := a.auth.User()
	fmt.Fprintf(a.out, "%s <%s>\n", user.Name, user.Email)
	if user.Age > 0 {
		fmt.Fprintf(a.out, "  age:    %d\n", user.Age)
	}
	if user.Weight > 0 {
		fmt.Fprintf(a.out, "  weight: %.1f kg\n", user.Weight)
	}
	if user.Height > 0 {
		fmt.Fprintf(a.out, "  height: %.0f cm\n", user.Height)
	}
	if bmi, category, ok := user.BMI(); ok {
		fmt.Fprintf(a.out, "  bmi:    %.1f (%s)\n", bmi, category)
	}
	return nil
}

func (a *app) profileUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile update", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	age := fs.Int("age", -1, "age in years")
	weight := fs.Float64("weight", -1, "weight in kilos")
	height := fs.Float64("height", -1, "height in centimeters")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var update users.ProfileUpdate
	if *name != "" {
		update.Name = name
	}
	if *age >= 0 {
		update.Age = age
	}
	if *weight >= 0 {
		update.Weight = weight
	}
	if *height >= 0 {
		update.Height = height
	}

	updated, err := a.users.UpdateProfile(ctx, update)
	if err != nil {
		return err
	}

	a.auth.UpdateUser(updated)
	fmt.Fprintln(a.out, "profile updated")
	return nil
}

func (a *app) workoutsCmd(ctx context.Context, args []string) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "list":
		if err := a.workouts.Fetch(ctx); err != nil {
			return err
		}
		items := a.workouts.Workouts()
		if len(items) == 0 {
			fmt.Fprintln(a.out, "no workouts yet")
			return nil
		}
		for _, w := range items {
			fmt.Fprintf(a.out, "%s  %s  %-12s %8s  %4d kcal",
				w.ID, stats.FormatDateShort(w.EffectiveDate()), w.Type,
				stats.FormatDuration(w.Duration), w.CaloriesBurned)
			if w.Notes != "" {
				fmt.Fprintf(a.out, "  %s", stats.TruncateText(w.Notes, 40))
			}
			fmt.Fprintln(a.out)
		}
		return nil

	case "add":
		workout, err := parseWorkoutFlags("workouts add", args[1:])
		if err != nil {
			return err
		}
		created, err := a.workouts.Create(ctx, *workout)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "workout %s added\n", created.ID)
		return nil

	case "update":
		fs := flag.NewFlagSet("workouts update", flag.ExitOnError)
		id := fs.String("id", "", "workout id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == "" {
			return errors.New("workout id is required (use -id)")
		}
		workout, err := parseWorkoutFlags("workouts update", fs.Args())
		if err != nil {
			return err
		}
		if _, err := a.workouts.Update(ctx, *id, *workout); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "workout %s updated\n", *id)
		return nil

	case "rm":
		fs := flag.NewFlagSet("workouts rm", flag.ExitOnError)
		id := fs.String("id", "", "workout id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == "" {
			return errors.New("workout id is required (use -id)")
		}
		if err := a.workouts.Delete(ctx, *id); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "workout %s removed\n", *id)
		return nil

	default:
		return fmt.Errorf("unknown workouts subcommand: %s", args[0])
	}
}

func parseWorkoutFlags(name string, args []string) (*workouts.Workout, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	workoutType := fs.String("type", "", "workout type, one of: "+strings.Join(workouts.Types(), ", "))
	duration := fs.Int("duration", 0, "duration in minutes")
	calories := fs.Int("calories", 0, "calories burned")
	date := fs.String("date", "", "date as YYYY-MM-DD, today when omitted")
	notes := fs.String("notes", "", "free-form notes")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	workout := &workouts.Workout{
		Type:           *workoutType,
		Duration:       *duration,
		CaloriesBurned: *calories,
		Notes:          *notes,
	}
	if *date != "" {
		parsed, err := time.ParseInLocation(dateInputLayout, *date, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parse date: %w", err)
		}
		workout.Date = parsed
	} else {
		workout.Date = time.Now()
	}
	return workout, nil
}

func (a *app) goalsCmd(ctx context.Context, args []string) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "list":
		if err := a.goals.Fetch(ctx); err != nil {
			return err
		}
		items := a.goals.Goals()
		if len(items) == 0 {
			fmt.Fprintln(a.out, "no goals yet")
			return nil
		}
		for _, g := range items {
			status := fmt.Sprintf("%3d%%", g.Progress())
			if g.IsCompleted {
				status = "done"
			} else if g.IsExpired(time.Now()) {
				status = "expired"
			}
			fmt.Fprintf(a.out, "%s  %-22s %7s  %.0f/%.0f  until %s\n",
				g.ID, g.Type, status, g.CurrentValue, g.TargetValue,
				stats.FormatDateShort(g.Deadline))
			if g.Description != "" {
				fmt.Fprintf(a.out, "      %s\n", stats.TruncateText(g.Description, 60))
			}
		}
		return nil

	case "add":
		goal, err := parseGoalFlags("goals add", args[1:])
		if err != nil {
			return err
		}
		created, err := a.goals.Create(ctx, *goal)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "goal %s added\n", created.ID)
		return nil

	case "update":
		fs := flag.NewFlagSet("goals update", flag.ExitOnError)
		id := fs.String("id", "", "goal id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == "" {
			return errors.New("goal id is required (use -id)")
		}
		goal, err := parseGoalFlags("goals update", fs.Args())
		if err != nil {
			return err
		}
		if _, err := a.goals.Update(ctx, *id, *goal); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "goal %s updated\n", *id)
		return nil

	case "complete":
		fs := flag.NewFlagSet("goals complete", flag.ExitOnError)
		id := fs.String("id", "", "goal id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == "" {
			return errors.New("goal id is required (use -id)")
		}
		completed, err := a.goals.Complete(ctx, *id)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "goal %s completed 🎉 (%s)\n", *id, completed.Type)
		return nil

	case "rm":
		fs := flag.NewFlagSet("goals rm", flag.ExitOnError)
		id := fs.String("id", "", "goal id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == "" {
			return errors.New("goal id is required (use -id)")
		}
		if err := a.goals.Delete(ctx, *id); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "goal %s removed\n", *id)
		return nil

	default:
		return fmt.Errorf("unknown goals subcommand: %s", args[0])
	}
}

func parseGoalFlags(name string, args []string) (*goals.Goal, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	goalType := fs.String("type", "", "goal type, one of: "+strings.Join(goals.Types(), ", "))
	target := fs.Float64("target", 0, "target value")
	current := fs.Float64("current", 0, "current value")
	deadline := fs.String("deadline", "", "deadline as YYYY-MM-DD")
	description := fs.String("description", "", "free-form description")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	goal := &goals.Goal{
		Type:         *goalType,
		TargetValue:  *target,
		CurrentValue: *current,
		Description:  *description,
	}
	if *deadline != "" {
		parsed, err := time.ParseInLocation(dateInputLayout, *deadline, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parse deadline: %w", err)
		}
		// end of that day, so the deadline day itself still counts
		goal.Deadline = parsed.Add(24*time.Hour - time.Second)
	}
	return goal, nil
}

// dashboard fetches workouts and goals concurrently, then renders the weekly
// activity chart, the goal progress list and the backend aggregates.
func (a *app) dashboard(ctx context.Context) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	var wg sync.WaitGroup
	var workoutsErr, goalsErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		workoutsErr = a.workouts.Fetch(ctx)
	}()
	go func() {
		defer wg.Done()
		goalsErr = a.goals.Fetch(ctx)
	}()
	wg.Wait()

	if workoutsErr != nil {
		return workoutsErr
	}
	if goalsErr != nil {
		return goalsErr
	}

	now := time.Now()
	items := a.workouts.Workouts()

	fmt.Fprintf(a.out, "hello %s, here is your week:\n\n", a.auth.User().Name)
	for _, bucket := range stats.WeeklyBuckets(items, 7, now) {
		bar := strings.Repeat("#", bucket.Duration/10)
		fmt.Fprintf(a.out, "  %s  %-30s %s\n",
			stats.FormatDateShort(bucket.Date), bar, stats.FormatDuration(bucket.Duration))
	}

	totals := stats.WeekStats(items, now)
	fmt.Fprintf(a.out, "\nlast 7 days: %d workouts, %s, %d kcal\n",
		totals.Count, stats.FormatDuration(totals.TotalDuration), totals.TotalCalories)

	goalItems := a.goals.Goals()
	if len(goalItems) > 0 {
		fmt.Fprintln(a.out, "\ngoals:")
		for _, g := range goalItems {
			if g.IsCompleted {
				continue
			}
			fmt.Fprintf(a.out, "  %-22s %3d%%  until %s\n",
				g.Type, g.Progress(), stats.FormatDate(g.Deadline))
		}
	}

	// the aggregate snapshot is a nice-to-have on the dashboard
	snapshot, err := a.users.Stats(ctx)
	if err != nil {
		log.Debugf("failed to get stats snapshot: %s", err)
		return nil
	}
	a.printSnapshot(snapshot)
	return nil
}

func (a *app) stats(ctx context.Context) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	snapshot, err := a.users.Stats(ctx)
	if err != nil {
		return err
	}
	a.printSnapshot(snapshot)
	return nil
}

func (a *app) printSnapshot(snapshot *users.StatsSnapshot) {
	fmt.Fprintf(a.out, "\nall time: %d workouts, %s, %.0f kcal\n",
		snapshot.Workouts.Total,
		stats.FormatDuration(snapshot.Workouts.Stats.TotalDuration),
		snapshot.Workouts.Stats.TotalCalories)
	for _, byType := range snapshot.Workouts.ByType {
		fmt.Fprintf(a.out, "  %-12s %3d sessions  %.0f kcal\n",
			byType.Type, byType.Count, byType.TotalCalories)
	}
	fmt.Fprintf(a.out, "goals: %d/%d completed (%.0f%%)\n",
		snapshot.Goals.Completed, snapshot.Goals.Total, snapshot.Goals.CompletionRate)
}

func (a *app) feed(ctx context.Context) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}

	feed, err := a.users.Feed(ctx)
	if err != nil {
		return err
	}

	if len(feed.Workouts) == 0 && len(feed.Achievements) == 0 {
		fmt.Fprintln(a.out, "nothing in the feed, follow some people first")
		return nil
	}

	for _, w := range feed.Workouts {
		fmt.Fprintf(a.out, "%s  %s did %s for %s (%d kcal)\n",
			stats.FormatDateShort(w.Date), w.User.Name, w.Type,
			stats.FormatDuration(w.Duration), w.CaloriesBurned)
	}
	for _, achievement := range feed.Achievements {
		fmt.Fprintf(a.out, "%s  %s unlocked: %s\n",
			stats.FormatDateShort(achievement.Date), achievement.User.Name, achievement.Title)
	}
	return nil
}

func (a *app) follow(ctx context.Context, args []string, follow bool) error {
	if err := a.requireAuth(ctx); err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("user id is required")
	}

	if follow {
		if err := a.users.Follow(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "now following %s\n", args[0])
		return nil
	}

	if err := a.users.Unfollow(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "unfollowed %s\n", args[0])
	return nil
}

// metrics dumps what the in-process collectors gathered during this run.
func (a *app) metrics() error {
	metricFamilies, err := a.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	for _, family := range metricFamilies {
		for _, metric := range family.GetMetric() {
			var value float64
			switch family.GetType() {
			case dto.MetricType_COUNTER:
				value = metric.GetCounter().GetValue()
			case dto.MetricType_GAUGE:
				value = metric.GetGauge().GetValue()
			case dto.MetricType_HISTOGRAM:
				value = float64(metric.GetHistogram().GetSampleCount())
			default:
				continue
			}

			labels := make([]string, 0, len(metric.GetLabel()))
			for _, labelPair := range metric.GetLabel() {
				labels = append(labels, labelPair.GetName()+"="+labelPair.GetValue())
			}
			if len(labels) > 0 {
				fmt.Fprintf(a.out, "%s{%s} %g\n", family.GetName(), strings.Join(labels, ","), value)
			} else {
				fmt.Fprintf(a.out, "%s %g\n", family.GetName(), value)
			}
		}
	}
	return nil
}
