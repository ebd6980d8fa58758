package apierrors

const (
	MsgInternal              = "internalError"
	MsgUnauthenticated       = "unauthenticated"
	MsgForbidden             = "forbidden"
	MsgInvalidLoginPayload   = "invalidLoginPayload"
	MsgInvalidCredentials    = "invalidCredentials"
	MsgInvalidUserPayload    = "invalidUserPayload"
	MsgUserAlreadyExists     = "userAlreadyExists"
	MsgUserNotFound          = "userNotFound"
	MsgManagerNotFound       = "managerNotFound"
	MsgInvalidTaskID         = "invalidTaskID"
	MsgInvalidTaskPayload    = "invalidTaskPayload"
	MsgInvalidTargetDate     = "invalidTargetDate"
	MsgTaskNotFound          = "taskNotFound"
	MsgTaskNotFoundOrNotYour = "taskNotFoundOrUnauthorized"
	MsgInvalidAssignment     = "invalidAssignment"
	MsgConflictingAssignment = "conflictingAssignment"
	MsgFailListTask          = "errorListTask"
	MsgFailCreateTask        = "failCreateTask"
	MsgFailUpdateTask        = "failUpdateTask"
	MsgFailReviewTask        = "failReviewTask"
	MsgFailLogin             = "failLogin"
	MsgFailRegisterUser      = "failRegisterUser"
	MsgFailLoadProfile       = "failLoadProfile"
	MsgFailUpdateProfile     = "failUpdateProfile"
)
