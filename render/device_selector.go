package render

import "github.com/sirupsen/logrus"

// DeviceSelection is the outcome of physical device selection.
type DeviceSelection struct {
	Info             *PhysicalDeviceInfo
	QueueFamilies    QueueFamilyIndices
	SwapChainSupport SwapChainSupport
}

// SelectPhysicalDevice returns the first device in enumeration order that passes every
// check. There is no scoring: on systems with several suitable devices the driver's
// enumeration order decides.
func SelectPhysicalDevice(instance Instance, surface Handle, log logrus.FieldLogger) (*DeviceSelection, error) {
	devices, code, err := instance.EnumeratePhysicalDevices()
	if err != nil {
		return nil, newError(ChoosePhysicalDeviceError, code, err)
	}

	for _, device := range devices {
		selection, reason, err := checkDevice(instance, device, surface)
		if err != nil {
			return nil, err
		}
		if selection == nil {
			log.WithField("reason", reason).Debug("Rejected physical device")
			continue
		}

		log.WithFields(logrus.Fields{
			"device":   selection.Info.Properties.Name,
			"type":     selection.Info.Properties.Type,
			"cache":    selection.Info.Properties.PipelineCacheUUID,
			"graphics": selection.QueueFamilies.Graphics,
			"present":  selection.QueueFamilies.Present,
		}).Info("Picked physical device")
		return selection, nil
	}

	return nil, supportError("no physical device passed the suitability checks", ErrNoSuitableDevice)
}

// checkDevice returns a nil selection and the rejection reason for unsuitable devices.
// Errors are only returned for failed surface queries.
func checkDevice(instance Instance, device Handle, surface Handle) (*DeviceSelection, string, error) {
	info, err := queryPhysicalDevice(instance, device)
	if err != nil {
		return nil, "", newError(ChoosePhysicalDeviceError, Success, err)
	}

	checks := []func() (string, bool){
		info.checkType,
		info.checkFeatures,
		info.checkExtensions,
	}
	for _, check := range checks {
		if reason, ok := check(); !ok {
			return nil, info.Properties.Name + ": " + reason, nil
		}
	}

	indices, reason, ok := resolveQueueFamilies(instance, device, surface, info.QueueFamilies)
	if !ok {
		return nil, info.Properties.Name + ": " + reason, nil
	}

	support, err := querySwapChainSupport(instance, device, surface)
	if err != nil {
		return nil, "", newError(ChoosePhysicalDeviceError, Success, err)
	}
	if reason, ok := checkSwapChainSupport(support); !ok {
		return nil, info.Properties.Name + ": " + reason, nil
	}

	return &DeviceSelection{Info: info, QueueFamilies: indices, SwapChainSupport: support}, "", nil
}
