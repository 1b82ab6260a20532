package render

// QueueFamilyIndices are the queue families the logical device submits graphics work
// and presentation requests to. Both may name the same family.
type QueueFamilyIndices struct {
	Graphics int
	Present  int
}

// UniqueIndices returns the families to request at device creation: the graphics
// family first, then the present family if it is a different one. Requesting the
// same family twice is invalid.
func (i QueueFamilyIndices) UniqueIndices() []int {
	if i.Graphics == i.Present {
		return []int{i.Graphics}
	}
	return []int{i.Graphics, i.Present}
}

func findQueueFamily(families []QueueFamilyProperties, flags QueueFlags) (int, bool) {
	for idx, family := range families {
		if family.Flags&flags == flags {
			return idx, true
		}
	}
	return 0, false
}

// findPresentQueueFamily asks the driver family by family for surface support. A failed
// query ends the search as if no further family could present.
func findPresentQueueFamily(instance Instance, physicalDevice Handle, surface Handle, familyCount int) (int, bool) {
	for idx := 0; idx < familyCount; idx++ {
		supported, _, err := instance.SurfaceSupport(physicalDevice, idx, surface)
		if err != nil {
			return 0, false
		}
		if supported {
			return idx, true
		}
	}
	return 0, false
}

func resolveQueueFamilies(instance Instance, physicalDevice Handle, surface Handle, families []QueueFamilyProperties) (QueueFamilyIndices, string, bool) {
	graphics, ok := findQueueFamily(families, QueueGraphics)
	if !ok {
		return QueueFamilyIndices{}, "missing graphics queue", false
	}

	present, ok := findPresentQueueFamily(instance, physicalDevice, surface, len(families))
	if !ok {
		return QueueFamilyIndices{}, "present queue family is not supported", false
	}

	return QueueFamilyIndices{Graphics: graphics, Present: present}, "", true
}
