/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of model.
* It has a primary index, and may possess secondary indexes (1:1 or 1:N).
* Easy queries for one and iteration.

Models are gogo protobuf messages. They are validated before every write
and serialized with proto.Marshal.
*/
package orm
