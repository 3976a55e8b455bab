// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/tomtom215/geolife/internal/ingest"
	"github.com/tomtom215/geolife/internal/models"
)

// NoDataMessage is printed in place of a result that has nothing to show.
const NoDataMessage = "No data available for this query"

// Printer writes report sections to an output stream.
type Printer struct {
	w io.Writer
}

// New creates a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Heading starts the section of query n.
func (p *Printer) Heading(n int) {
	fmt.Fprintf(p.w, "\n-------- Query %d ----------\n", n)
}

// NoData reports an empty result.
func (p *Printer) NoData() {
	fmt.Fprintln(p.w, NoDataMessage)
}

// IngestSummary prints the timing of an ingestion run.
func (p *Printer) IngestSummary(stats *ingest.Stats) {
	fmt.Fprintf(p.w, "Started: %s\nFinished: %s\nTotal: %s\n",
		stats.StartTime.Format(time.DateTime),
		stats.EndTime.Format(time.DateTime),
		stats.Duration().Round(time.Millisecond))
	fmt.Fprintf(p.w, "Inserted %s users, %s activities and %s trackpoints in %s batches\n",
		group(int64(stats.Users)), group(int64(stats.Activities)),
		group(int64(stats.TrackPoints)), group(int64(stats.Batches)))
}

// Totals prints the size of each collection.
func (p *Printer) Totals(t *models.Totals) {
	fmt.Fprintf(p.w, "There are %d users, %s activities and %s trackpoints in the dataset\n",
		t.Users, group(t.Activities), group(t.TrackPoints))
}

// AverageActivities prints the mean number of activities per user.
func (p *Printer) AverageActivities(avg float64) {
	fmt.Fprintf(p.w, "The average number of activities per user is %.2f\n", avg)
}

// TopActiveUsers prints the most active users ranking.
func (p *Printer) TopActiveUsers(rows []models.UserActivityCount) {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{strconv.Itoa(r.Rank), r.UserID, strconv.FormatInt(r.Activities, 10)})
	}
	p.blank()
	p.table([]string{"nr.", "user id", "activities"}, data)
}

// TaxiUsers prints the users that have taken a taxi.
func (p *Printer) TaxiUsers(ids []string) {
	fmt.Fprintln(p.w, "Users who have taken a taxi")
	p.blank()
	p.table([]string{"user id"}, column(ids))
}

// ModeCounts prints the number of activities per transportation mode.
func (p *Printer) ModeCounts(rows []models.ModeCount) {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{r.Mode, strconv.FormatInt(r.Count, 10)})
	}
	p.blank()
	p.table([]string{"mode", "count"}, data)
}

// BusiestYear prints the year with most activities, the year with most
// recorded hours and whether they match, followed by the hours ranking.
func (p *Printer) BusiestYear(b *models.BusiestYear) {
	fmt.Fprintf(p.w, "The year %d has the most activities with %s activities\n",
		b.MostActivities.Year, group(b.MostActivities.Count))
	if len(b.MostHours) > 0 {
		top := b.MostHours[0]
		fmt.Fprintf(p.w, "The year %d has the most recorded hours with %s hours\n",
			top.Year, group(roundHours(top.Hours)))
	}

	if b.SameYear() {
		fmt.Fprintln(p.w, "\nYes, this is also the year with most recorded hours!")
	} else {
		fmt.Fprintln(p.w, "\nNo, this is not the year with most recorded hours")
	}
	p.blank()

	data := make([][]string, 0, len(b.MostHours))
	for _, yh := range b.MostHours {
		data = append(data, []string{strconv.Itoa(yh.Year), strconv.FormatInt(roundHours(yh.Hours), 10)})
	}
	p.table([]string{"year", "hours"}, data)
}

// Distance prints the distance covered by a user in one mode during a year.
func (p *Printer) Distance(userID string, year int, mode string, km float64) {
	fmt.Fprintf(p.w, "The total distance (%s) in %d by user %s is %.2f km\n", mode, year, userID, km)
}

// AltitudeGain prints the altitude gain ranking.
func (p *Printer) AltitudeGain(rows []models.UserAltitudeGain) {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{strconv.Itoa(r.Rank), r.UserID, strconv.FormatFloat(r.Meters, 'f', -1, 64)})
	}
	p.blank()
	p.table([]string{"nr.", "user id", "altitude"}, data)
}

// InvalidActivities prints the number of invalid activities per user.
func (p *Printer) InvalidActivities(rows []models.UserInvalidActivities) {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{r.UserID, strconv.Itoa(r.InvalidActivities)})
	}
	p.blank()
	p.table([]string{"user_id", "invalid_activities"}, data)
}

// ForbiddenCityVisitors prints one line per user seen in the Forbidden City.
func (p *Printer) ForbiddenCityVisitors(ids []string) {
	for _, id := range ids {
		fmt.Fprintf(p.w, "User %s has trackpoints in the forbidden city\n", id)
	}
}

// DominantModes prints each user's most used transportation mode.
func (p *Printer) DominantModes(rows []models.UserDominantMode) {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{r.UserID, r.Mode, strconv.Itoa(r.Count)})
	}
	p.blank()
	p.table([]string{"user id", "transportation mode", "count"}, data)
}

func (p *Printer) blank() {
	fmt.Fprintln(p.w)
}

// table renders a GitHub markdown table.
func (p *Printer) table(header []string, rows [][]string) {
	t := tablewriter.NewWriter(p.w)
	t.SetHeader(header)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	t.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	t.SetCenterSeparator("|")
	t.AppendBulk(rows)
	t.Render()
}

func column(values []string) [][]string {
	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = []string{v}
	}
	return rows
}

// group formats n with thousands separated by spaces.
func group(n int64) string {
	return strings.ReplaceAll(humanize.Comma(n), ",", " ")
}

func roundHours(h float64) int64 {
	return int64(math.RoundToEven(h))
}
