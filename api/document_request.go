package api

import "mime/multipart"

type CompressRequest struct {
	File    *multipart.FileHeader `form:"file" binding:"required"`
	Quality string                `form:"quality"`
}

type LockRequest struct {
	File          *multipart.FileHeader `form:"file" binding:"required"`
	Password      string                `form:"password" binding:"required"`
	OwnerPassword string                `form:"owner_password"`
}

type UnlockRequest struct {
	File     *multipart.FileHeader `form:"file" binding:"required"`
	Password string                `form:"password" binding:"required"`
}

type ConvertRequest struct {
	File   *multipart.FileHeader `form:"file" binding:"required"`
	Engine string                `form:"engine"`
}
