package dataset

// Field identifies a recognized dataset column.
type Field int

const (
	FieldTime Field = iota
	FieldACState
	FieldWindowState
	FieldACTemperature
	FieldRoomTemperature
	FieldAirflowSpeed
	numFields
)

var fieldHeaders = [numFields]string{
	FieldTime:            "Time",
	FieldACState:         "AC State",
	FieldWindowState:     "Window State",
	FieldACTemperature:   "AC Temperature (°C)",
	FieldRoomTemperature: "room temperature",
	FieldAirflowSpeed:    "Airflow Speed (m/s)",
}

// Header returns the column name the field is read from.
func (f Field) Header() string {
	if f < 0 || f >= numFields {
		return ""
	}
	return fieldHeaders[f]
}

func (f Field) String() string { return f.Header() }

// FieldByHeader resolves a header cell. Matching is exact.
func FieldByHeader(h string) (Field, bool) {
	for f, name := range fieldHeaders {
		if name == h {
			return Field(f), true
		}
	}
	return 0, false
}

// Row is one record of the simulation dataset. The zero value is an empty,
// malformed row. Rows are values; nothing mutates them after parsing.
type Row struct {
	Time            string
	ACState         string
	WindowState     string
	ACTemperature   string
	RoomTemperature string
	AirflowSpeed    string

	present uint8
}

// NewRow builds a row from column values. Every field named in values is
// considered present, including empty strings.
func NewRow(values map[Field]string) Row {
	var r Row
	for f, v := range values {
		r.set(f, v)
	}
	return r
}

func (r *Row) set(f Field, v string) {
	switch f {
	case FieldTime:
		r.Time = v
	case FieldACState:
		r.ACState = v
	case FieldWindowState:
		r.WindowState = v
	case FieldACTemperature:
		r.ACTemperature = v
	case FieldRoomTemperature:
		r.RoomTemperature = v
	case FieldAirflowSpeed:
		r.AirflowSpeed = v
	default:
		return
	}
	r.present |= 1 << uint(f)
}

// Get returns the value of f and whether the source line defined it.
func (r Row) Get(f Field) (string, bool) {
	if f < 0 || f >= numFields {
		return "", false
	}
	var v string
	switch f {
	case FieldTime:
		v = r.Time
	case FieldACState:
		v = r.ACState
	case FieldWindowState:
		v = r.WindowState
	case FieldACTemperature:
		v = r.ACTemperature
	case FieldRoomTemperature:
		v = r.RoomTemperature
	case FieldAirflowSpeed:
		v = r.AirflowSpeed
	}
	return v, r.Has(f)
}

// Has reports whether the source line defined f.
func (r Row) Has(f Field) bool {
	if f < 0 || f >= numFields {
		return false
	}
	return r.present&(1<<uint(f)) != 0
}

// Valid reports whether the row survives load filtering: a non-empty Time
// and at least one of the AC or window states defined.
func (r Row) Valid() bool {
	return r.Time != "" && (r.Has(FieldACState) || r.Has(FieldWindowState))
}

// ACOn reports whether the AC state is exactly "1".
func (r Row) ACOn() bool { return r.ACState == "1" }

// WindowOpen reports whether the window state is exactly "1".
func (r Row) WindowOpen() bool { return r.WindowState == "1" }

// Airflow returns the airflow speed parsed leniently; 0 when missing or not
// numeric.
func (r Row) Airflow() float64 { return ParseNumber(r.AirflowSpeed) }

// Temperature returns the displayed temperature value: the AC temperature
// when non-empty, otherwise the room temperature. Empty when neither is set.
func (r Row) Temperature() string {
	if r.ACTemperature != "" {
		return r.ACTemperature
	}
	return r.RoomTemperature
}
