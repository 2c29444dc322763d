// Package services contains the application services behind the client's
// views: authentication, the item listing, report creation and closing an
// item out. Each operation returns a Result telling the surface which
// notice to show and where to navigate next.
package services
