package model

// Pool is a holding area for crew not placed on a dock.
type Pool string

const (
	PoolUnassigned Pool = "unassigned"
	PoolBreak      Pool = "break"
	PoolAbsent     Pool = "absent"
	PoolStarkist   Pool = "starkist"
)

// Pools lists the holding areas in display order.
var Pools = []Pool{PoolUnassigned, PoolBreak, PoolAbsent, PoolStarkist}

// Valid reports whether p is a known pool.
func (p Pool) Valid() bool {
	switch p {
	case PoolUnassigned, PoolBreak, PoolAbsent, PoolStarkist:
		return true
	default:
		return false
	}
}

// Label returns the display label of the pool.
func (p Pool) Label() string {
	switch p {
	case PoolUnassigned:
		return "미배정 (Unassigned)"
	case PoolBreak:
		return "휴식 (On Break)"
	case PoolAbsent:
		return "결근 (Absent)"
	case PoolStarkist:
		return "Starkist C/D"
	default:
		return string(p)
	}
}
