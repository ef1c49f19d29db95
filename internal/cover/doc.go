// Package cover resolves and downloads track cover images.
//
// Image links found in an info block may be protocol-relative, origin-relative
// or absolute. Resolve normalizes them against the reference site's origin and
// Download streams the image to disk in fixed-size chunks, naming the file after
// the track with the extension taken from the image URL.
package cover
