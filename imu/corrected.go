package imu

import "go.viam.com/imubridge/ros"

// Corrected remaps a translated message into the corrected frame: angular velocity and linear
// acceleration become (y, -x, z), covariances are kept.
//
// The orientation is left zero; the matching roll/pitch/yaw swap is not implemented.
func (st *SampleTranslator) Corrected(msg ros.Imu) ros.Imu {
	out := msg
	out.Header.FrameID = st.settings.CorrectedFrameID
	out.Orientation = ros.Quaternion{}
	out.AngularVelocity = swapXY(msg.AngularVelocity)
	out.LinearAcceleration = swapXY(msg.LinearAcceleration)
	return out
}

func swapXY(v ros.Vector3) ros.Vector3 {
	return ros.Vector3{X: v.Y, Y: -v.X, Z: v.Z}
}
