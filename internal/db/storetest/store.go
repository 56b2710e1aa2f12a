// Package storetest provides an in-memory db.Store used by handler and
// player tests. It mirrors the Postgres store's behavior closely enough for
// the playback and scheduling paths, without a database.
package storetest

import (
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/auralis-io/auralis/internal/db"
	"github.com/auralis-io/auralis/internal/model"
)

const heartbeatQuantum = 10

type progressKey struct {
	TerminalID int
	StyleID    int
}

type sessionKey struct {
	TerminalID int
	StyleID    int
	Day        string
}

type Store struct {
	mu sync.Mutex

	nextID    int
	Terminals map[int]*model.Terminal
	Styles    map[int]*model.Style
	Groups    map[int]*model.TerminalGroup
	Entries   []model.ScheduleEntry
	Progress  map[progressKey]int
	Sessions  map[sessionKey]*model.PlaySession
	Activity  []model.ActivityEntry

	// Now is the clock used for day bucketing and timestamps.
	Now func() time.Time
}

var _ db.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		Terminals: make(map[int]*model.Terminal),
		Styles:    make(map[int]*model.Style),
		Groups:    make(map[int]*model.TerminalGroup),
		Progress:  make(map[progressKey]int),
		Sessions:  make(map[sessionKey]*model.PlaySession),
		Now:       time.Now,
	}
}

func (s *Store) id() int {
	s.nextID++
	return s.nextID
}

func (s *Store) CreateTerminal(name string, location *string) (model.Terminal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.Now()
	t := &model.Terminal{
		ID: s.id(), Name: name, Location: location,
		Volume: 70, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	s.Terminals[t.ID] = t
	return *t, nil
}

func (s *Store) GetTerminalByID(id int) (model.Terminal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.Terminals[id]
	if !ok {
		return model.Terminal{}, sql.ErrNoRows
	}
	return *t, nil
}

func (s *Store) GetTerminalByDeviceID(deviceID string) (model.Terminal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.Terminals {
		if t.DeviceID != nil && *t.DeviceID == deviceID {
			return *t, nil
		}
	}
	return model.Terminal{}, sql.ErrNoRows
}

func (s *Store) ListTerminals() ([]model.Terminal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Terminal, 0, len(s.Terminals))
	for _, t := range s.Terminals {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListTerminalOverviews() ([]model.TerminalOverview, error) {
	terminals, _ := s.ListTerminals()
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.TerminalOverview, 0, len(terminals))
	for _, t := range terminals {
		o := model.TerminalOverview{Terminal: t}
		if t.CurrentStyleID != nil {
			if st, ok := s.Styles[*t.CurrentStyleID]; ok {
				o.StyleName = &st.Name
			}
		}
		if t.GroupID != nil {
			if g, ok := s.Groups[*t.GroupID]; ok {
				o.GroupName = &g.Name
			}
		}
		out = append(out, o)
	}
	return out, nil
}

func (s *Store) UpdateTerminal(id int, name, location *string) error {
	return s.mutateTerminal(id, func(t *model.Terminal) {
		if name != nil {
			t.Name = *name
		}
		if location != nil {
			t.Location = location
		}
	})
}

func (s *Store) DeleteTerminal(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Terminals[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.Terminals, id)
	return nil
}

func (s *Store) PairTerminal(id int, deviceID string) error {
	return s.mutateTerminal(id, func(t *model.Terminal) {
		t.DeviceID = &deviceID
		t.Paired = true
	})
}

func (s *Store) SetTerminalActive(id int, active bool) error {
	return s.mutateTerminal(id, func(t *model.Terminal) { t.IsActive = active })
}

func (s *Store) SetTerminalAutoMode(id int, auto bool) error {
	return s.mutateTerminal(id, func(t *model.Terminal) { t.IsAutoMode = auto })
}

func (s *Store) SetTerminalVolume(id int, volume int) error {
	return s.mutateTerminal(id, func(t *model.Terminal) { t.Volume = volume })
}

func (s *Store) SetTerminalGroup(terminalID int, groupID *int) error {
	return s.mutateTerminal(terminalID, func(t *model.Terminal) { t.GroupID = groupID })
}

func (s *Store) mutateTerminal(id int, fn func(*model.Terminal)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.Terminals[id]
	if !ok {
		return sql.ErrNoRows
	}
	fn(t)
	t.UpdatedAt = s.Now()
	return nil
}

func (s *Store) CreateStyle(name string, description, mixURL *string, duration *int) (model.Style, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.Now()
	st := &model.Style{
		ID: s.id(), Name: name, Description: description,
		MixURL: mixURL, Duration: duration, CreatedAt: now, UpdatedAt: now,
	}
	s.Styles[st.ID] = st
	return *st, nil
}

func (s *Store) GetStyleByID(id int) (model.Style, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.Styles[id]
	if !ok {
		return model.Style{}, sql.ErrNoRows
	}
	return *st, nil
}

func (s *Store) ListStyles() ([]model.Style, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Style, 0, len(s.Styles))
	for _, st := range s.Styles {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) UpdateStyle(id int, name, description, mixURL *string, duration *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.Styles[id]
	if !ok {
		return sql.ErrNoRows
	}
	if name != nil {
		st.Name = *name
	}
	if description != nil {
		st.Description = description
	}
	if mixURL != nil {
		st.MixURL = mixURL
	}
	if duration != nil {
		st.Duration = duration
	}
	st.UpdatedAt = s.Now()
	return nil
}

func (s *Store) DeleteStyle(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Styles[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.Styles, id)
	return nil
}

func (s *Store) CreateScheduleEntry(styleID int, terminalID *int, startTime, endTime string) (model.ScheduleEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.Now()
	e := model.ScheduleEntry{
		ID: s.id(), StyleID: styleID, TerminalID: terminalID,
		StartTime: startTime, EndTime: endTime, CreatedAt: now, UpdatedAt: now,
	}
	s.Entries = append(s.Entries, e)
	return e, nil
}

func (s *Store) ListScheduleEntries() ([]model.ScheduleEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ScheduleEntry, len(s.Entries))
	copy(out, s.Entries)
	return out, nil
}

func (s *Store) ListScheduleEntriesForTerminal(terminalID int) ([]model.ScheduleEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.ScheduleEntry
	for _, e := range s.Entries {
		if e.TerminalID == nil || *e.TerminalID == terminalID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) UpdateScheduleEntry(id int, styleID *int, startTime, endTime *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Entries {
		if s.Entries[i].ID != id {
			continue
		}
		if styleID != nil {
			s.Entries[i].StyleID = *styleID
		}
		if startTime != nil {
			s.Entries[i].StartTime = *startTime
		}
		if endTime != nil {
			s.Entries[i].EndTime = *endTime
		}
		s.Entries[i].UpdatedAt = s.Now()
		return nil
	}
	return sql.ErrNoRows
}

func (s *Store) DeleteScheduleEntry(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Entries {
		if s.Entries[i].ID == id {
			s.Entries = append(s.Entries[:i], s.Entries[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (s *Store) RecordHeartbeat(terminalID, position int, isPlaying bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.Terminals[terminalID]
	if !ok {
		return sql.ErrNoRows
	}
	now := s.Now()
	t.LastPlayedAt = &now
	t.IsPlaying = isPlaying
	t.UpdatedAt = now

	if t.CurrentStyleID == nil {
		return nil
	}
	styleID := *t.CurrentStyleID
	s.Progress[progressKey{terminalID, styleID}] = position

	if !isPlaying {
		return nil
	}
	key := sessionKey{terminalID, styleID, now.Format("2006-01-02")}
	if sess, ok := s.Sessions[key]; ok {
		sess.TotalPlayed += heartbeatQuantum
		sess.EndedAt = now
		return nil
	}
	day, _ := time.Parse("2006-01-02", key.Day)
	s.Sessions[key] = &model.PlaySession{
		ID: s.id(), TerminalID: terminalID, StyleID: styleID,
		Day: day, StartedAt: now, EndedAt: now, TotalPlayed: heartbeatQuantum,
	}
	return nil
}

func (s *Store) ChangeTerminalStyle(terminalID, styleID int) (model.Terminal, model.Style, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.Terminals[terminalID]
	if !ok {
		return model.Terminal{}, model.Style{}, 0, sql.ErrNoRows
	}
	st, ok := s.Styles[styleID]
	if !ok {
		return model.Terminal{}, model.Style{}, 0, sql.ErrNoRows
	}
	if st.MixURL == nil || *st.MixURL == "" {
		return model.Terminal{}, model.Style{}, 0, db.ErrStyleUnavailable
	}
	t.CurrentStyleID = &st.ID
	t.UpdatedAt = s.Now()
	position := s.Progress[progressKey{terminalID, styleID}]
	return *t, *st, position, nil
}

func (s *Store) GetProgress(terminalID, styleID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Progress[progressKey{terminalID, styleID}], nil
}

func (s *Store) ListPlaySessions(terminalID, styleID *int, day *string) ([]model.PlaySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.PlaySession
	for key, sess := range s.Sessions {
		if terminalID != nil && key.TerminalID != *terminalID {
			continue
		}
		if styleID != nil && key.StyleID != *styleID {
			continue
		}
		if day != nil && key.Day != *day {
			continue
		}
		out = append(out, *sess)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) RecordActivity(terminalID int, action string, details *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Activity = append(s.Activity, model.ActivityEntry{
		ID: s.id(), TerminalID: terminalID, Action: action,
		Details: details, CreatedAt: s.Now(),
	})
	return nil
}

func (s *Store) ListActivity(terminalID *int, limit, offset int) ([]model.ActivityEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 {
		limit = 100
	}
	var out []model.ActivityEntry
	for i := len(s.Activity) - 1; i >= 0; i-- {
		e := s.Activity[i]
		if terminalID != nil && e.TerminalID != *terminalID {
			continue
		}
		out = append(out, e)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) CreateGroup(name string, description *string) (model.TerminalGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.Now()
	g := &model.TerminalGroup{ID: s.id(), Name: name, Description: description, CreatedAt: now, UpdatedAt: now}
	s.Groups[g.ID] = g
	return *g, nil
}

func (s *Store) ListGroups() ([]model.TerminalGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.TerminalGroup, 0, len(s.Groups))
	for _, g := range s.Groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) RenameGroup(id int, name, description *string) (model.TerminalGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.Groups[id]
	if !ok {
		return model.TerminalGroup{}, sql.ErrNoRows
	}
	if name != nil {
		g.Name = *name
	}
	if description != nil {
		g.Description = description
	}
	g.UpdatedAt = s.Now()
	return *g, nil
}

func (s *Store) DeleteGroup(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Groups[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.Groups, id)
	return nil
}
