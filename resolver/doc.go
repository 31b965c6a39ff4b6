// Package resolver turns image references found in documentation pages into
// decoded, PNG-encoded images ready for embedding.
//
// A reference is one of:
//
//   - an inline data: URI, base64 or percent encoded
//   - an absolute http(s) URL, used as-is; protocol-relative //host/x URLs
//     get an https scheme
//   - a site-relative path such as /img/a.png, prefixed with the site origin;
//     other relative references resolve against the origin root
//
// # Basic Usage
//
//	r, err := resolver.New("https://docs.example.com", resolver.WithLogger(log))
//	img, err := r.Resolve(ctx, "/img/diagram.svg")
//
// The payload is identified by content, not by extension. SVG is rasterized,
// and raster formats (PNG, JPEG, GIF, WebP, BMP, TIFF) are decoded. Images
// wider than the configured maximum pixel width are downscaled, and the
// result is always re-encoded as PNG in memory.
//
// # Errors
//
// Failures wrap one of [ErrFetch], [ErrDecode] or [ErrUnsupported]. Callers
// are expected to log the failure and leave the image out.
package resolver
