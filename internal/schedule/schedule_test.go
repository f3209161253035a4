package schedule

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *WeeklySchedule
	}{
		{
			name: "empty string",
			raw:  "",
			want: nil,
		},
		{
			name: "garbage",
			raw:  "not a schedule",
			want: nil,
		},
		{
			name: "legacy labels single range",
			raw:  "Lun, Mar 08:00-20:00",
			want: &WeeklySchedule{Days: []Day{Mon, Tue}, Open1: "08:00", Close1: "20:00"},
		},
		{
			name: "legacy labels split shift",
			raw:  "Lun, Mar 08:00-20:00 | 16:00-20:00",
			want: &WeeklySchedule{Days: []Day{Mon, Tue}, Open1: "08:00", Close1: "20:00", Open2: "16:00", Close2: "20:00"},
		},
		{
			name: "canonical labels",
			raw:  "Mon, Wed, Fri 09:00-13:00",
			want: &WeeklySchedule{Days: []Day{Mon, Wed, Fri}, Open1: "09:00", Close1: "13:00"},
		},
		{
			name: "unknown day tokens are dropped",
			raw:  "Lun, Xyz, Mar 08:00-20:00",
			want: &WeeklySchedule{Days: []Day{Mon, Tue}, Open1: "08:00", Close1: "20:00"},
		},
		{
			name: "no recognized days",
			raw:  "Xyz 08:00-20:00",
			want: nil,
		},
		{
			name: "time range without days",
			raw:  "08:00-20:00",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.raw)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		schedule WeeklySchedule
		fallback string
		want     string
	}{
		{
			name:     "canonical order regardless of input order",
			schedule: WeeklySchedule{Days: []Day{Wed, Mon}, Open1: "09:00", Close1: "13:00"},
			want:     "Mon, Wed 09:00-13:00",
		},
		{
			name:     "split shift",
			schedule: WeeklySchedule{Days: []Day{Mon, Tue}, Open1: "08:00", Close1: "12:00", Open2: "16:00", Close2: "20:00"},
			want:     "Mon, Tue 08:00-12:00 | 16:00-20:00",
		},
		{
			name:     "empty day set falls back",
			schedule: WeeklySchedule{Open1: "09:00", Close1: "13:00"},
			fallback: "Lun a Vie 08:00-20:00",
			want:     "Lun a Vie 08:00-20:00",
		},
		{
			name:     "missing primary range falls back",
			schedule: WeeklySchedule{Days: []Day{Mon}},
			fallback: "previous value",
			want:     "previous value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.schedule.Encode(tt.fallback))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	schedules := []WeeklySchedule{
		{Days: []Day{Mon, Tue, Wed}, Open1: "08:00", Close1: "20:00"},
		{Days: []Day{Sat, Sun}, Open1: "10:00", Close1: "14:00", Open2: "16:00", Close2: "22:00"},
		{Days: []Day{Mon, Tue, Wed, Thu, Fri, Sat, Sun}, Open1: "00:00", Close1: "23:59"},
	}

	for _, w := range schedules {
		encoded := w.Encode("")
		decoded := Decode(encoded)
		require.NotNil(t, decoded)
		require.Equal(t, &w, decoded)
	}
}
