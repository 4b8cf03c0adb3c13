// Package imaging normalizes the image_data input accepted by the alt-text
// tools into a form the vision layer can consume.
//
// Tool callers may supply an image three ways:
//   - an http:// or https:// URL
//   - raw base64-encoded image bytes
//   - a data URL ("data:image/png;base64,....")
//
// All three normalize to an Input value. Two resolvers are provided:
//
//   - Source fetches URLs over HTTP (10 second timeout), enforces the
//     content-type allow-list and the 5 MiB size cap, decodes the pixels,
//     and downscales anything larger than 2048 px on its longest side.
//   - LocalSource performs only the syntactic work (prefix stripping,
//     base64 decoding, size cap) and never touches the network or the pixel
//     data. It backs the fixture configuration and offline tests.
//
// Every failure is a returned error; callers are expected to fold errors
// into their own error envelope rather than crash the server.
package imaging
