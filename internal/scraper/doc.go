// Package scraper provides HTTP fetching and HTML parsing for CGA daily event listings.
//
// The scraper package keeps one cookie-carrying session against the CGA events web
// application. On first use it loads the landing page and captures the ASP.NET
// anti-forgery fields (__VIEWSTATE, __VIEWSTATEGENERATOR, __EVENTVALIDATION), then
// replays them on every per-day search POST. The returned HTML is scanned row by row:
// rows whose first two cells parse as a date and a time become events, with the title
// and location picked from the remaining cells by content heuristics.
package scraper
