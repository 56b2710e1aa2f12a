// exposes a Store interface that is passed to API calls w/ param requirements
package db

import (
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/auralis-io/auralis/internal/model"
)

// ErrStyleUnavailable is returned when a style without a mix is selected.
var ErrStyleUnavailable = errors.New("style has no mix")

type Store interface {
	// terminal functions
	CreateTerminal(name string, location *string) (model.Terminal, error)
	GetTerminalByID(id int) (model.Terminal, error)
	GetTerminalByDeviceID(deviceID string) (model.Terminal, error)
	ListTerminals() ([]model.Terminal, error)
	ListTerminalOverviews() ([]model.TerminalOverview, error)
	UpdateTerminal(id int, name, location *string) error
	DeleteTerminal(id int) error
	PairTerminal(id int, deviceID string) error
	SetTerminalActive(id int, active bool) error
	SetTerminalAutoMode(id int, auto bool) error
	SetTerminalVolume(id int, volume int) error
	SetTerminalGroup(terminalID int, groupID *int) error

	// style functions
	CreateStyle(name string, description, mixURL *string, duration *int) (model.Style, error)
	GetStyleByID(id int) (model.Style, error)
	ListStyles() ([]model.Style, error)
	UpdateStyle(id int, name, description, mixURL *string, duration *int) error
	DeleteStyle(id int) error

	// schedule functions
	CreateScheduleEntry(styleID int, terminalID *int, startTime, endTime string) (model.ScheduleEntry, error)
	ListScheduleEntries() ([]model.ScheduleEntry, error)
	ListScheduleEntriesForTerminal(terminalID int) ([]model.ScheduleEntry, error)
	UpdateScheduleEntry(id int, styleID *int, startTime, endTime *string) error
	DeleteScheduleEntry(id int) error

	// playback persistence
	RecordHeartbeat(terminalID, position int, isPlaying bool) error
	ChangeTerminalStyle(terminalID, styleID int) (model.Terminal, model.Style, int, error)
	GetProgress(terminalID, styleID int) (int, error)

	// analytics
	ListPlaySessions(terminalID, styleID *int, day *string) ([]model.PlaySession, error)
	RecordActivity(terminalID int, action string, details *string) error
	ListActivity(terminalID *int, limit, offset int) ([]model.ActivityEntry, error)

	// group functions
	CreateGroup(name string, description *string) (model.TerminalGroup, error)
	ListGroups() ([]model.TerminalGroup, error)
	RenameGroup(id int, name, description *string) (model.TerminalGroup, error)
	DeleteGroup(id int) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(db *sqlx.DB) Store {
	return &pgStore{db: db}
}
