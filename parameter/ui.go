package parameter

import "time"

// KeyHold keeps a key pressed between terminal auto-repeat events
const KeyHold = 150 * time.Millisecond

// DebugVectorScale magnifies per-frame vectors in the debug overlay
const DebugVectorScale = 100.0
