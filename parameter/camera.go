package parameter

// DefaultCameraTween is the fraction of the remaining distance covered per ms of follow
const DefaultCameraTween = 0.05
