package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	pkgerrors "github.com/jakkusu1/planma-app/pkg/errors"
)

func mustClock(t *testing.T, s string) ClockTime {
	t.Helper()
	c, err := ParseClock(s)
	if err != nil {
		t.Fatalf("ParseClock(%q) 失败: %v", s, err)
	}
	return c
}

func iv(t *testing.T, date, start, end string) TimeInterval {
	t.Helper()
	d, err := ParseDate(date)
	if err != nil {
		t.Fatalf("ParseDate(%q) 失败: %v", date, err)
	}
	return NewInterval(d, mustClock(t, start), mustClock(t, end))
}

// ── Overlaps ──

func TestTimeInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b [3]string
		want bool
	}{
		{"部分重叠", [3]string{"2025-09-01", "09:00", "10:00"}, [3]string{"2025-09-01", "09:30", "10:30"}, true},
		{"包含", [3]string{"2025-09-01", "08:00", "12:00"}, [3]string{"2025-09-01", "09:00", "10:00"}, true},
		{"完全相同", [3]string{"2025-09-01", "09:00", "10:00"}, [3]string{"2025-09-01", "09:00", "10:00"}, true},
		{"首尾相接", [3]string{"2025-09-01", "09:00", "10:00"}, [3]string{"2025-09-01", "10:00", "11:00"}, false},
		{"尾首相接", [3]string{"2025-09-01", "10:00", "11:00"}, [3]string{"2025-09-01", "09:00", "10:00"}, false},
		{"不相交", [3]string{"2025-09-01", "09:00", "10:00"}, [3]string{"2025-09-01", "13:00", "14:00"}, false},
		{"不同日期", [3]string{"2025-09-01", "09:00", "10:00"}, [3]string{"2025-09-02", "09:00", "10:00"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := iv(t, tt.a[0], tt.a[1], tt.a[2])
			b := iv(t, tt.b[0], tt.b[1], tt.b[2])
			if got := a.Overlaps(b); got != tt.want {
				t.Errorf("a.Overlaps(b) 期望 %v，实际 %v", tt.want, got)
			}
			if got := b.Overlaps(a); got != tt.want {
				t.Errorf("重叠判断应对称：b.Overlaps(a) 期望 %v，实际 %v", tt.want, got)
			}
		})
	}
}

// 穷举同一日内的所有整点区间，确认与 a.start < b.end && b.start < a.end 等价
func TestTimeInterval_Overlaps_MatchesPredicate(t *testing.T) {
	date, _ := ParseDate("2025-09-01")
	for as := 0; as < 6; as++ {
		for ae := as + 1; ae <= 6; ae++ {
			for bs := 0; bs < 6; bs++ {
				for be := bs + 1; be <= 6; be++ {
					a := NewInterval(date, NewClock(as, 0, 0), NewClock(ae, 0, 0))
					b := NewInterval(date, NewClock(bs, 0, 0), NewClock(be, 0, 0))
					want := as < be && bs < ae
					if a.Overlaps(b) != want {
						t.Fatalf("[%d,%d) vs [%d,%d) 期望 %v", as, ae, bs, be, want)
					}
				}
			}
		}
	}
}

func TestTimeInterval_Equals(t *testing.T) {
	a := iv(t, "2025-09-01", "09:00", "10:00")
	if !a.Equals(iv(t, "2025-09-01", "09:00:00", "10:00:00")) {
		t.Error("HH:MM 与 HH:MM:SS 表示的同一时段应相等")
	}
	if a.Equals(iv(t, "2025-09-01", "09:00", "10:30")) {
		t.Error("结束时间不同不应相等")
	}
	if a.Equals(iv(t, "2025-09-02", "09:00", "10:00")) {
		t.Error("日期不同不应相等")
	}
}

func TestTimeInterval_Validate(t *testing.T) {
	if err := iv(t, "2025-09-01", "09:00", "10:00").Validate(); err != nil {
		t.Errorf("合法时段不应报错: %v", err)
	}

	zero := iv(t, "2025-09-01", "09:00", "09:00")
	if err := zero.Validate(); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("零时长应返回 ErrInvalidInterval，实际: %v", err)
	}

	negative := iv(t, "2025-09-01", "10:00", "09:00")
	err := negative.Validate()
	if !errors.Is(err, pkgerrors.ErrValidation) {
		t.Errorf("负时长应归类为校验失败，实际: %v", err)
	}

	if err := (TimeInterval{StartTime: 1, EndTime: 2}).Validate(); !errors.Is(err, pkgerrors.ErrValidation) {
		t.Errorf("缺少日期应校验失败，实际: %v", err)
	}
}

func TestTimeInterval_StartsAfter(t *testing.T) {
	old := iv(t, "2025-09-01", "09:00", "10:00")

	if !iv(t, "2025-09-01", "09:30", "10:30").StartsAfter(old) {
		t.Error("同日更晚开始应判定为后移")
	}
	if !iv(t, "2025-09-02", "08:00", "09:00").StartsAfter(old) {
		t.Error("次日更早时刻仍应判定为后移")
	}
	if iv(t, "2025-09-01", "09:00", "11:00").StartsAfter(old) {
		t.Error("开始时间不变不应判定为后移")
	}
	if iv(t, "2025-08-31", "23:00", "23:30").StartsAfter(old) {
		t.Error("前一天不应判定为后移")
	}
}

// ── ClockTime ──

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"09:30", "09:30:00", false},
		{"23:59:59", "23:59:59", false},
		{"10:00:00.000000", "10:00:00", false},
		{"24:00", "", true},
		{"9:30", "", true},
		{"ab:cd", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		c, err := ParseClock(tt.in)
		if tt.wantErr {
			if !errors.Is(err, pkgerrors.ErrValidation) {
				t.Errorf("ParseClock(%q) 期望校验失败，实际: %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q) 不应失败: %v", tt.in, err)
			continue
		}
		if c.String() != tt.want {
			t.Errorf("ParseClock(%q) 期望 %s，实际 %s", tt.in, tt.want, c)
		}
	}
}

func TestClockTime_ScanAndValue(t *testing.T) {
	var c ClockTime
	if err := c.Scan("14:05:00.000000"); err != nil {
		t.Fatalf("Scan string 失败: %v", err)
	}
	if c != NewClock(14, 5, 0) {
		t.Errorf("期望 14:05:00，实际 %s", c)
	}

	if err := c.Scan(time.Date(0, 1, 1, 7, 45, 10, 0, time.UTC)); err != nil {
		t.Fatalf("Scan time.Time 失败: %v", err)
	}
	if c.String() != "07:45:10" {
		t.Errorf("期望 07:45:10，实际 %s", c)
	}

	v, err := NewClock(8, 0, 0).Value()
	if err != nil || v != "08:00:00" {
		t.Errorf("Value 期望 08:00:00，实际 %v (%v)", v, err)
	}
}

func TestClockTime_JSON(t *testing.T) {
	var payload struct {
		Start ClockTime `json:"start"`
	}
	if err := json.Unmarshal([]byte(`{"start":"13:15"}`), &payload); err != nil {
		t.Fatalf("Unmarshal 失败: %v", err)
	}
	out, _ := json.Marshal(payload)
	if string(out) != `{"start":"13:15:00"}` {
		t.Errorf("JSON 输出不符: %s", out)
	}
}

func TestParseDuration(t *testing.T) {
	secs, err := ParseDuration("01:30:15")
	if err != nil {
		t.Fatalf("ParseDuration 失败: %v", err)
	}
	if secs != 5415 {
		t.Errorf("期望 5415 秒，实际 %d", secs)
	}
	if FormatDuration(secs) != "01:30:15" {
		t.Errorf("FormatDuration 往返不一致: %s", FormatDuration(secs))
	}
	if _, err := ParseDuration("90"); !errors.Is(err, pkgerrors.ErrValidation) {
		t.Errorf("非法时长应校验失败，实际: %v", err)
	}
}

func TestParseDayName(t *testing.T) {
	d, ok := ParseDayName("Monday")
	if !ok || d.Weekday() != time.Monday {
		t.Errorf("Monday 应解析为 time.Monday")
	}
	if _, ok := ParseDayName("monday"); ok {
		t.Error("星期名称区分大小写")
	}
}
