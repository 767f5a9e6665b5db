// Package timezone resolves all time handling to the property's local
// timezone. Night counts, promotion windows, and report date ranges are
// all evaluated in property time, never in server-local or UTC time.
//
// Usage:
//
//	now := timezone.Now()                   // current time in property timezone
//	local := timezone.ToAppTime(someTime)   // convert any time to property timezone
//	s := timezone.Format(t, "2006-01-02")   // format in property timezone
//	t, err := timezone.Parse("2006-01-02", "2026-08-01")
//	loc := timezone.GetLocation()
//
// The timezone is configured via the APP_TIMEZONE environment variable
// (IANA names such as "UTC" or "Asia/Jakarta") and is initialized when
// the package is imported.
package timezone
