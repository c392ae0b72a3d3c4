package transit

// Update is the result of parsing one provider response. At most one field is
// set; a zero Update means the payload was empty or malformed and the caller
// must leave previously stored records untouched.
type Update struct {
	Schedules *ScheduleSet
	Traffic   *TrafficInfo
	Bike      *BikeStationSnapshot
}

func (u Update) Empty() bool {
	return u.Schedules == nil && u.Traffic == nil && u.Bike == nil
}
