// Package fixture decodes the `*.srcjson` wire format into an
// internal/srcast tree plus the side tables (oracle.TypeOf,
// oracle.ConvertedTypeOf, oracle.ConstantValueOf) a real front end would
// have computed while resolving the file. It stands in for "a front end
// already ran": a test or the CLI driver can write one JSON file per
// compilation unit and get back exactly the inputs internal/transform
// expects, without this repository ever lexing or parsing L-src text
// itself.
//
// The format mirrors srcast's own node shapes closely — one JSON object
// per node, a "type" string discriminating which Go struct it decodes
// into — so a fixture author can read the srcast package's doc comments
// as the schema reference. Symbols are the one thing the format
// interns: a symbol object may carry an "id", and any later field that
// needs the identical *srcast.Symbol (a constructor initializer
// targeting an overload, an override chain) may reference it by that id
// as a bare JSON string instead of repeating the object.
package fixture
