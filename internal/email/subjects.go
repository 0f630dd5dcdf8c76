package email

const subjectPasswordResetOTP = "Your password reset code"
