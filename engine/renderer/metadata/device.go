package metadata

/**
 * @brief Describes the device to create.
 */
type DeviceDesc struct {
	Type DeviceType
	/** @brief Enables native debug output where the driver supports it. */
	Debug bool
}

/** @brief Describes a device context bound to a swapchain. */
type ContextDesc struct {
	Swapchain GraphicsSwapchain
}
