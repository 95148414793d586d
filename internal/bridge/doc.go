// Package bridge is the request/response surface the desktop front end
// talks to. It is a gRPC service described by a hand-written ServiceDesc
// and carried with a JSON codec, so messages are plain Go structs (plus a
// few well-known protobuf types) and no generated code is involved.
//
// Commands:
//
//	HashPassword     {password}            -> {hash}
//	VerifyPassword   {password, hash}      -> {valid}
//	SetSession       {session}             -> {}
//	ClearSession     {}                    -> {}
//	GetCurrentUser   {}                    -> {session|null}
//	CheckAuthStatus  {}                    -> bool
//	Execute          {query, values}       -> {rows_affected, last_insert_id}
//	Select           {query, values}       -> {rows}
//
// The standard gRPC health service is registered alongside.
package bridge
