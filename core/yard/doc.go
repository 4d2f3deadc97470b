// Package yard holds the dock yard state store and the views derived from it.
//
// Store owns docks, the crew pool, the crew name directory, completed time
// records and the dashboard filter. Every mutation runs under the store
// mutex and replaces the collections it touches, so a Snapshot taken earlier
// is never modified afterwards. Each mutation publishes an Event on the
// configured bus; subscribers use it to refresh views, record metrics or
// journal completed operations.
//
// The view functions (VisibleDocks, Roster, ComputeKPIs, BuildSchedule) are
// pure functions of a Snapshot.
package yard
