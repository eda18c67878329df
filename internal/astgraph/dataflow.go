package astgraph

// Flow links a read of a name to a write of the same name generated
// earlier in the walk.
type Flow struct {
	Read  *GraphNode
	Write *GraphNode
}

// resolveFlows links every read-role node to the earlier write-role nodes
// with an identical token sequence. records must be ordered by first position.
// With nearest set only the latest such write is linked.
func resolveFlows(records []Record, nearest bool) []Flow {
	var flows []Flow
	for i, rec := range records {
		read := rec.Current
		if read.Role != RoleRead {
			continue
		}
		for j := i - 1; j >= 0; j-- {
			write := records[j].Current
			if write.Role != RoleWrite || !sameTokens(read, write) {
				continue
			}
			flows = append(flows, Flow{Read: read, Write: write})
			if nearest {
				break
			}
		}
	}
	return flows
}
