package daysheet

import (
	"sort"

	"github.com/google/uuid"

	"github.com/orplan/orplan/internal/domain/surgery"
)

// roomGroup is an intermediate grouping before pagination.
type roomGroup struct {
	name       string
	staffNames []string
	rows       []Row
}

// BuildDaySheet groups the day's surgeries by room into a paginated
// layout. Cancelled surgeries stay in, marked; rooms sort ascending by
// name with the unassigned bucket always last; within a room surgeries
// sort by planned start. The second return is false when there is
// nothing to print — an empty day is an empty result, not an error.
func BuildDaySheet(in Input, rowsPerPage int) (*DaySheet, bool) {
	if len(in.Surgeries) == 0 {
		return nil, false
	}
	if rowsPerPage <= 0 {
		rowsPerPage = 12
	}

	roomNames := make(map[uuid.UUID]string, len(in.Rooms))
	for _, r := range in.Rooms {
		roomNames[r.ID] = r.Name
	}

	byRoom := make(map[string]*roomGroup)
	for _, sg := range in.Surgeries {
		name := UnassignedRoom
		var staff []string
		if sg.RoomID != nil {
			if n, ok := roomNames[*sg.RoomID]; ok {
				name = n
			}
			staff = in.RoomStaff[*sg.RoomID]
		}
		g, ok := byRoom[name]
		if !ok {
			g = &roomGroup{name: name, staffNames: staff}
			byRoom[name] = g
		}
		g.rows = append(g.rows, buildRow(in, sg))
	}

	groups := make([]*roomGroup, 0, len(byRoom))
	for _, g := range byRoom {
		sort.Slice(g.rows, func(i, j int) bool {
			return g.rows[i].Admission.Before(g.rows[j].Admission)
		})
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].name == UnassignedRoom {
			return false
		}
		if groups[j].name == UnassignedRoom {
			return true
		}
		return groups[i].name < groups[j].name
	})

	return &DaySheet{Date: in.Date, Pages: paginate(groups, rowsPerPage)}, true
}

func buildRow(in Input, sg *surgery.Surgery) Row {
	row := Row{
		Date:      in.Date,
		Admission: sg.PlannedStart,
		Surgeon:   sg.Surgeon,
		Procedure: sg.PlannedSurgery,
		Cancelled: sg.Status == surgery.StatusCancelled,
	}
	if sg.Notes != nil {
		row.Notes = *sg.Notes
	}
	if p, ok := in.Patients[sg.PatientID]; ok {
		row.PatientName = p.FullName()
		row.PatientBirth = p.BirthDate
	}
	for _, m := range in.Markers[sg.ID] {
		if m.Code == surgery.MarkerIncision && m.Time != nil {
			row.Incision = m.Time
			break
		}
	}
	return row
}

// paginate fills pages up to rowsPerPage. A room whose table spills
// over continues on the next page without repeating its header; a new
// room group always gets one.
func paginate(groups []*roomGroup, rowsPerPage int) []Page {
	var pages []Page
	page := Page{Number: 1}
	used := 0

	flush := func() {
		if len(page.Segments) > 0 {
			pages = append(pages, page)
		}
		page = Page{Number: len(pages) + 1}
		used = 0
	}

	for _, g := range groups {
		remaining := g.rows
		continued := false
		for len(remaining) > 0 {
			if used >= rowsPerPage {
				flush()
			}
			space := rowsPerPage - used
			take := len(remaining)
			if take > space {
				take = space
			}
			page.Segments = append(page.Segments, Segment{
				RoomName:   g.name,
				StaffNames: g.staffNames,
				ShowHeader: !continued,
				Rows:       remaining[:take],
			})
			used += take
			remaining = remaining[take:]
			continued = true
		}
	}
	flush()
	return pages
}
