package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/divyadrishti/internal/client/models"
)

const titleLimit = 40

var predictionKinds = []models.PredictionKind{
	models.PredictionRemedies,
	models.PredictionNumerology,
	models.PredictionFestival,
	models.PredictionBabyNames,
}

func (a *App) Kundali(ctx context.Context) error {
	bd, err := a.birthDetails(ctx, "", a.profileDetails())
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	res := a.contentService.Kundali(ctx, models.KundaliRequest{BirthDetails: bd})
	a.rememberName(ctx, bd.Name)

	var b strings.Builder
	fmt.Fprintf(&b, "Kundali for %s\n", bd.Name)
	fmt.Fprintf(&b, "Lagna: %s  Moon: %s  Sun: %s  Nakshatra: %s\n",
		res.RawData.Lagna, res.RawData.MoonSign, res.RawData.SunSign, res.RawData.Nakshatra)
	houses := make([]int, 0, len(res.RawData.Houses))
	for h := range res.RawData.Houses {
		houses = append(houses, h)
	}
	sort.Ints(houses)
	for _, h := range houses {
		fmt.Fprintf(&b, "  House %2d: %s\n", h, strings.Join(res.RawData.Houses[h], " "))
	}
	b.WriteString(res.Analysis)
	printlnFn(b.String())

	a.logActivity(ctx, models.ActivityKundali, "Kundali for "+bd.Name)
	return nil
}

func (a *App) Match(ctx context.Context) error {
	boy, err := a.birthDetails(ctx, "Boy", models.BirthDetails{})
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	girl, err := a.birthDetails(ctx, "Girl", models.BirthDetails{})
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	res := a.contentService.Match(ctx, models.MatchRequest{Boy: boy, Girl: girl})
	a.rememberName(ctx, boy.Name)
	a.rememberName(ctx, girl.Name)

	var b strings.Builder
	fmt.Fprintf(&b, "Guna Milan: %g / %g\n", res.Score, res.Total)
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	for _, g := range res.GunaMilan {
		fmt.Fprintf(tw, "  %s\t%g / %g\n", g.Area, g.Score, g.Max)
	}
	_ = tw.Flush()
	b.WriteString(res.Description)
	printlnFn(b.String())

	a.logActivity(ctx, models.ActivityMatching, fmt.Sprintf("Match: %s & %s", boy.Name, girl.Name))
	return nil
}

// Horoscope accepts "horoscope <sign> [timeframe]"; the sign is prompted for
// when missing and the timeframe defaults to daily.
func (a *App) Horoscope(ctx context.Context, args []string) error {
	req := models.HoroscopeRequest{Timeframe: "daily"}
	if len(args) > 0 {
		req.Sign = args[0]
	} else {
		sign, err := getSimpleText(a.reader, "Enter zodiac sign", promptOut)
		if err != nil {
			printlnFn("Error:", err)
			return err
		}
		req.Sign = sign
	}
	if req.Sign == "" {
		printlnFn("Usage: horoscope <sign> [daily|weekly|monthly|yearly]")
		return nil
	}
	if len(args) > 1 {
		req.Timeframe = strings.ToLower(args[1])
	}

	printlnFn(a.contentService.Horoscope(ctx, req))
	a.logActivity(ctx, models.ActivityHoroscope, fmt.Sprintf("%s %s horoscope", req.Sign, req.Timeframe))
	return nil
}

// Panchang accepts "panchang [date] [location...]".
func (a *App) Panchang(ctx context.Context, args []string) error {
	var req models.PanchangRequest
	if len(args) > 0 {
		req.Date = args[0]
	}
	if len(args) > 1 {
		req.Location = strings.Join(args[1:], " ")
	}

	p := a.contentService.Panchang(ctx, req)

	var b strings.Builder
	fmt.Fprintf(&b, "Panchang for %s, %s\n", p.Date, p.Location)
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	for _, row := range [][2]string{
		{"Tithi", p.Tithi},
		{"Nakshatra", p.Nakshatra},
		{"Yog", p.Yog},
		{"Karan", p.Karan},
		{"Sunrise", p.Sunrise},
		{"Sunset", p.Sunset},
	} {
		if row[1] != "" {
			fmt.Fprintf(tw, "  %s\t%s\n", row[0], row[1])
		}
	}
	_ = tw.Flush()
	b.WriteString(p.Summary)
	printlnFn(strings.TrimRight(b.String(), "\n"))

	a.logActivity(ctx, models.ActivityTool, "Panchang "+p.Date)
	return nil
}

// Chat sends one message to the astrologer, keeping the conversation so far
// as context.
func (a *App) Chat(ctx context.Context, args []string) error {
	message := strings.Join(args, " ")
	if message == "" {
		var err error
		if message, err = getSimpleText(a.reader, "Ask the astrologer", promptOut); err != nil {
			printlnFn("Error:", err)
			return err
		}
	}
	if message == "" {
		return nil
	}

	reply := a.contentService.Chat(ctx, message, a.chat, "")
	a.chat = append(a.chat,
		models.ChatTurn{Role: "user", Text: message},
		models.ChatTurn{Role: "model", Text: reply},
	)
	printlnFn(reply)

	a.logActivity(ctx, models.ActivityChat, truncate(message, titleLimit))
	return nil
}

// Predict accepts "predict <kind> [input...]".
func (a *App) Predict(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: predict <remedies|numerology|festival|babyNames> [input]")
		return nil
	}
	kind, ok := parsePredictionKind(args[0])
	if !ok {
		printlnFn("Unknown prediction:", args[0])
		return nil
	}

	input := strings.Join(args[1:], " ")
	if input == "" {
		var err error
		if input, err = getSimpleText(a.reader, "Enter input for "+string(kind), promptOut); err != nil {
			printlnFn("Error:", err)
			return err
		}
	}

	printlnFn(a.contentService.Prediction(ctx, models.PredictionRequest{Kind: kind, Input: input}))
	a.logActivity(ctx, models.ActivityTool, truncate(fmt.Sprintf("%s: %s", kind, input), titleLimit))
	return nil
}

// History prints the activities of the signed-in user, newest first.
func (a *App) History(ctx context.Context) error {
	sess := a.authService.Current()
	if sess == nil || len(sess.User.Activities) == 0 {
		printlnFn("No activity yet")
		return nil
	}

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	for _, act := range sess.User.Activities {
		at := time.UnixMilli(act.Timestamp).Local().Format("2006-01-02 15:04")
		fmt.Fprintf(tw, "%s\t%s\t%s\n", at, act.Type, act.Title)
	}
	_ = tw.Flush()
	printlnFn(strings.TrimRight(b.String(), "\n"))
	return nil
}

// Names prints the recently entered names.
func (a *App) Names(ctx context.Context) error {
	names, err := a.names.List(ctx)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	if len(names) == 0 {
		printlnFn("No names yet")
		return nil
	}
	printlnFn(strings.Join(names, "\n"))
	return nil
}

// Status prints the connection mode, the session, the quota breaker and the
// call counters of this run.
func (a *App) Status(ctx context.Context) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Mode: %s\n", orDash(string(a.mode())))

	if sess := a.authService.Current(); sess != nil {
		fmt.Fprintf(&b, "User: %s (%s)\n", sess.User.Username, sess.Source)
	} else {
		b.WriteString("User: -\n")
	}

	if tripped, resetAt := a.contentService.QuotaStatus(); tripped {
		fmt.Fprintf(&b, "AI quota: paused until %s\n", resetAt.Local().Format(time.TimeOnly))
	} else {
		b.WriteString("AI quota: available\n")
	}

	if a.metrics != nil {
		s, err := a.metrics.Summary()
		if err != nil {
			a.logger().Warn(ctx, "failed to read metrics", "err", err)
		} else {
			fmt.Fprintf(&b, "Remote calls: %g ok, %g failed, %g skipped; fallbacks: %g; quota trips: %g\n",
				s.RemoteOK, s.RemoteFailed, s.Skipped, s.Fallbacks, s.BreakerTrips)
		}
	}
	printlnFn(strings.TrimRight(b.String(), "\n"))
	return nil
}

// birthDetails prompts for a person's birth data. who prefixes the prompts
// and def supplies the values used when the user presses Enter.
func (a *App) birthDetails(ctx context.Context, who string, def models.BirthDetails) (models.BirthDetails, error) {
	if names, err := a.names.List(ctx); err == nil && len(names) > 0 {
		printlnFn("Recent names:", strings.Join(names, ", "))
	}

	prefix := ""
	if who != "" {
		prefix = who + " "
	}

	var bd models.BirthDetails
	var err error
	fields := []struct {
		prompt string
		def    string
		dst    *string
	}{
		{prefix + "name", def.Name, &bd.Name},
		{prefix + "date of birth (YYYY-MM-DD)", def.DOB, &bd.DOB},
		{prefix + "time of birth (HH:MM)", def.Time, &bd.Time},
		{prefix + "place of birth", def.Place, &bd.Place},
	}
	for _, f := range fields {
		if *f.dst, err = getTextOrDefault(a.reader, "Enter "+f.prompt, f.def, promptOut); err != nil {
			return models.BirthDetails{}, err
		}
	}
	return bd, nil
}

func (a *App) profileDetails() models.BirthDetails {
	sess := a.authService.Current()
	if sess == nil {
		return models.BirthDetails{}
	}
	return models.BirthDetails{Name: sess.User.Name, DOB: sess.User.DOB, Time: sess.User.Time, Place: sess.User.Place}
}

func (a *App) rememberName(ctx context.Context, name string) {
	if _, err := a.names.Add(ctx, name); err != nil {
		a.logger().Warn(ctx, "failed to save name history", "err", err)
	}
}

func (a *App) logActivity(ctx context.Context, typ models.ActivityType, title string) {
	if a.activityLogger != nil {
		a.activityLogger.Log(ctx, typ, title)
	}
}

func parsePredictionKind(s string) (models.PredictionKind, bool) {
	for _, k := range predictionKinds {
		if strings.EqualFold(s, string(k)) {
			return k, true
		}
	}
	return "", false
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
