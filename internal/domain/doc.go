// Package domain models the USGS earthquake summary feed and the display
// attributes derived from it.
//
// # Data Source
//
// The USGS publishes rolling GeoJSON summaries at
// https://earthquake.usgs.gov/earthquakes/feed/v1.0/geojson.php. The default
// feed is all_week.geojson: every event recorded in the past seven days.
//
// # Feed Conventions
//
// Each feature carries:
//
//	properties.place  free text, e.g. "10km NE of Testville" (may be empty)
//	properties.time   event time in epoch milliseconds (UTC)
//	properties.mag    magnitude; can be negative for very small events and
//	                  null when not yet computed
//	geometry.coordinates  [longitude, latitude, depth]
//
// Depth is in kilometres below sea level. Negative depth means the event was
// located above sea level (e.g. under a mountain).
//
// # Display Attributes
//
// Radius is magnitude x 100000 metres, unclamped. Fill color comes from a
// six-band depth ladder with inclusive lower bounds:
//
//	< 10 km   #64B5F6
//	10-30 km  #43A047
//	30-50 km  #FFF176
//	50-70 km  #FB8C00
//	70-90 km  #B71C1C
//	>= 90 km  #FF3300
//
// The same ladder drives the map legend through [DepthBands].
package domain
