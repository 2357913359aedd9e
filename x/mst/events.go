package mst

// Names of the events emitted by the multi signature engine. The subject of
// each event is the transaction id.
const (
	EventMSTSubmitted     = "MSTSubmitted"
	EventMSTSigned        = "MSTSigned"
	EventSignatureRevoked = "signatureRevoked"
	EventMSTExecuted      = "MSTExecuted"
)
