package storage

//////
// Vars, consts, and types.
//////

// Operation is the operation name.
type Operation string

const (
	OperationDelete   Operation = "delete"
	OperationDescribe Operation = "describe"
	OperationGet      Operation = "get"
	OperationList     Operation = "list"
	OperationPut      Operation = "put"
	OperationQuery    Operation = "query"
	OperationScalar   Operation = "scalar"
	OperationScan     Operation = "scan"
)

//////
// Methods.
//////

// String implements the Stringer interface.
func (o Operation) String() string {
	return string(o)
}
