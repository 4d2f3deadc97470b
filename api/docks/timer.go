package docks

import (
	"net/http"

	"github.com/kilianp07/dockyard/api"
	"github.com/kilianp07/dockyard/core/model"
	"github.com/kilianp07/dockyard/core/yard"
)

// TimerAction selects what a timer route does.
type TimerAction string

const (
	TimerToggle TimerAction = "toggle"
	TimerStart  TimerAction = "start"
	TimerStop   TimerAction = "stop"
)

type timerResponse struct {
	Dock   dockView          `json:"dock"`
	Record *model.TimeRecord `json:"record,omitempty"`
}

// NewTimerHandler serves POST /api/docks/{id}/timer[/start|/stop]. Starting
// a non-startable or running dock and stopping an idle one reply 409 with
// the unchanged dock.
func NewTimerHandler(st *yard.Store, action TimerAction) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		var (
			d       model.Dock
			rec     *model.TimeRecord
			changed bool
			err     error
		)
		switch action {
		case TimerStart:
			d, changed, err = st.StartTimer(id)
		case TimerStop:
			d, rec, err = st.StopTimer(id)
			changed = rec != nil
		default:
			d, rec, err = st.ToggleTimer(id)
			changed = rec != nil || d.Running()
		}
		if err != nil {
			api.Error(w, err)
			return
		}
		code := http.StatusOK
		if !changed {
			code = http.StatusConflict
		}
		api.WriteJSON(w, code, timerResponse{Dock: view(d, st), Record: rec})
	})
}
